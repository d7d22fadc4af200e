package notify

import (
	"log"
	"net/http"

	"tripmate/middleware"
	"tripmate/rdx"
	"tripmate/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeNotificationsWS streams the caller's notifications live. Each
// connection holds its own Redis subscription on the user's channel.
func ServeNotificationsWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token"))
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	sub := rdx.RdxSubscribe(channelFor(claims.UserID))

	// forward published notifications until either side closes
	go func() {
		defer conn.Close()
		for msg := range sub.Channel() {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		}
	}()

	go func() {
		defer sub.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
