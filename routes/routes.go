package routes

import (
	"net/http"

	"tripmate/accompany"
	"tripmate/auth"
	"tripmate/chat"
	"tripmate/export"
	"tripmate/feed"
	"tripmate/follow"
	"tripmate/middleware"
	"tripmate/notify"
	"tripmate/optimize"
	"tripmate/places"
	"tripmate/profile"
	"tripmate/ratelim"
	"tripmate/regionchat"
	"tripmate/trips"
	"tripmate/weather"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/avatar/*filepath", http.Dir("uploads/avatar"))
	router.ServeFiles("/uploads/post/*filepath", http.Dir("uploads/post"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddTripRoutes(router *httprouter.Router) {
	router.POST("/api/trips", middleware.Authenticate(trips.CreateTrip))
	router.GET("/api/trips", middleware.Authenticate(trips.GetMyTrips))
	router.GET("/api/trips/:id", middleware.Authenticate(trips.GetTrip))
	router.GET("/api/trips/:id/edit", middleware.Authenticate(trips.GetTripEditView))
	router.PUT("/api/trips/:id", middleware.Authenticate(trips.UpdateTrip))
	router.DELETE("/api/trips/:id", middleware.Authenticate(trips.DeleteTrip))

	router.PUT("/api/trips/:id/days/:dayIndex/items", middleware.Authenticate(trips.ReplaceDayItems))
	router.PUT("/api/trips/:id/days/:dayIndex/times", middleware.Authenticate(trips.UpdateDayTimes))
	router.POST("/api/trips/:id/days/:dayIndex/recalc", middleware.Authenticate(trips.RecalcDayLegs))

	router.GET("/api/trips/:id/export.pdf", middleware.Authenticate(export.ExportTripPDF))

	router.POST("/api/optimize/day", ratelim.RateLimit(middleware.Authenticate(optimize.OptimizeDay)))
}

func AddPlaceRoutes(router *httprouter.Router) {
	router.GET("/api/places/nearby", ratelim.RateLimit(places.GetNearbyPlaces))
	router.GET("/api/places/search", ratelim.RateLimit(places.SearchPlaces))
	router.GET("/api/geocode", ratelim.RateLimit(places.GeocodeCity))
	router.GET("/api/geocode/reverse", ratelim.RateLimit(places.ReverseGeocode))
	router.GET("/api/weather", ratelim.RateLimit(weather.GetWeather))
}

func AddFeedRoutes(router *httprouter.Router) {
	router.POST("/api/feed/posts", middleware.Authenticate(feed.CreatePost))
	router.GET("/api/feed/posts", middleware.OptionalAuth(feed.GetPosts))
	router.GET("/api/feed/posts/:id", middleware.OptionalAuth(feed.GetPost))
	router.DELETE("/api/feed/posts/:id", middleware.Authenticate(feed.DeletePost))
	router.POST("/api/feed/posts/:id/like", ratelim.RateLimit(middleware.Authenticate(feed.ToggleLike)))
	router.POST("/api/feed/posts/:id/comments", middleware.Authenticate(feed.CreateComment))
	router.GET("/api/feed/posts/:id/comments", feed.GetComments)
}

func AddAccompanyRoutes(router *httprouter.Router) {
	router.POST("/api/accompany/posts", middleware.Authenticate(accompany.CreateAccompanyPost))
	router.GET("/api/accompany/posts", middleware.OptionalAuth(accompany.GetAccompanyPosts))
	router.GET("/api/accompany/posts/:id", accompany.GetAccompanyPost)
	router.PUT("/api/accompany/posts/:id", middleware.Authenticate(accompany.UpdateAccompanyPost))
	router.PUT("/api/accompany/posts/:id/close", middleware.Authenticate(accompany.CloseAccompanyPost))
	router.DELETE("/api/accompany/posts/:id", middleware.Authenticate(accompany.DeleteAccompanyPost))

	router.POST("/api/accompany/posts/:id/apply", ratelim.RateLimit(middleware.Authenticate(accompany.Apply)))
	router.GET("/api/accompany/posts/:id/applications", middleware.Authenticate(accompany.GetApplications))
	router.PUT("/api/accompany/posts/:id/applications/:appId/accept", middleware.Authenticate(accompany.AcceptApplication))
	router.PUT("/api/accompany/posts/:id/applications/:appId/reject", middleware.Authenticate(accompany.RejectApplication))

	router.POST("/api/accompany/posts/:id/comments", middleware.Authenticate(accompany.CreateAccompanyComment))
	router.GET("/api/accompany/posts/:id/comments", accompany.GetAccompanyComments)
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile/me", middleware.Authenticate(profile.GetMyProfile))
	router.PUT("/api/profile/me", middleware.Authenticate(profile.UpdateMyProfile))
	router.POST("/api/profile/me/avatar", middleware.Authenticate(profile.UploadAvatar))
	router.GET("/api/users/:id", middleware.OptionalAuth(profile.GetProfile))

	router.POST("/api/follow/:id", middleware.Authenticate(follow.FollowUser))
	router.DELETE("/api/follow/:id", middleware.Authenticate(follow.UnfollowUser))
	router.GET("/api/follow/:id", middleware.OptionalAuth(follow.GetFollowState))
	router.GET("/api/follow/:id/followers", follow.GetFollowers)
	router.GET("/api/follow/:id/following", follow.GetFollowing)
}

func AddNotificationRoutes(router *httprouter.Router) {
	router.GET("/api/notifications", middleware.Authenticate(notify.GetNotifications))
	router.GET("/api/notifications/unread", middleware.Authenticate(notify.GetUnreadCount))
	router.PUT("/api/notifications/:id/read", middleware.Authenticate(notify.MarkRead))
	router.POST("/api/notifications/read-all", middleware.Authenticate(notify.MarkAllRead))
	router.GET("/ws/notifications", middleware.Authenticate(notify.ServeNotificationsWS))
}

func AddChatRoutes(router *httprouter.Router, hub *regionchat.Hub) {
	router.GET("/api/chats", middleware.Authenticate(chat.ListChats))
	router.GET("/api/chats/:id", middleware.Authenticate(chat.GetChat))
	router.GET("/api/chats/:id/messages", middleware.Authenticate(chat.GetMessages))
	router.POST("/api/chats/:id/messages", middleware.Authenticate(chat.SendMessage))

	router.POST("/api/region-chat/verify", ratelim.RateLimit(middleware.Authenticate(regionchat.VerifyLocation)))
	router.GET("/api/region-chat/:city/messages", middleware.Authenticate(regionchat.GetRegionMessages))
	router.GET("/ws/region/:city", middleware.Authenticate(regionchat.ServeRegionChat(hub)))
}

func RoutesWrapper(router *httprouter.Router, hub *regionchat.Hub) {
	AddStaticRoutes(router)
	AddAuthRoutes(router)
	AddTripRoutes(router)
	AddPlaceRoutes(router)
	AddFeedRoutes(router)
	AddAccompanyRoutes(router)
	AddProfileRoutes(router)
	AddNotificationRoutes(router)
	AddChatRoutes(router, hub)
}
