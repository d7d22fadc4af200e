package regionchat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tripmate/db"
	"tripmate/middleware"
	"tripmate/models"
	"tripmate/places"
	"tripmate/planner"
	"tripmate/rdx"
	"tripmate/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	verifyTTL      = 30 * time.Minute
	historyLimit   = 50
	maxContentSize = 2000
)

var geocoder = places.NewGeocoder()

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type inboundPayload struct {
	Content string `json:"content"`
}

// VerifyLocation reverse-geocodes the caller's GPS position and unlocks the
// matching city room for a limited window.
func VerifyLocation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !planner.ValidCoords(body.Lat, body.Lng) {
		utils.Error(w, http.StatusBadRequest, "invalid coordinates")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	city, _, err := geocoder.ReverseCity(ctx, body.Lat, body.Lng)
	if err != nil || city == "" {
		utils.Error(w, http.StatusBadGateway, "could not resolve current city")
		return
	}

	if err := rdx.RdxSetTTL(verifyKey(userID), city, verifyTTL); err != nil {
		log.Printf("region verify cache failed for %s: %v", userID, err)
	}

	utils.JSON(w, http.StatusOK, utils.M{"city": city, "valid_minutes": int(verifyTTL.Minutes())})
}

// GetRegionMessages returns the recent history of a city room over plain HTTP.
func GetRegionMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	city := ps.ByName("city")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	msgs, err := recentMessages(ctx, city)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch messages")
		return
	}
	utils.JSON(w, http.StatusOK, msgs)
}

// ServeRegionChat upgrades the connection and joins the caller to the room for
// :city. The caller must have verified their location for that city first.
func ServeRegionChat(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		city := ps.ByName("city")

		// Browsers cannot set Authorization headers on websocket upgrades,
		// so the token rides in the query string.
		claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token"))
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		verified, err := rdx.RdxGet(verifyKey(claims.UserID))
		if err != nil || verified != city {
			utils.Error(w, http.StatusForbidden, "location not verified for this city")
			return
		}

		nickname := lookupNickname(r.Context(), claims.UserID, claims.Username)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := newClient(conn, city, claims.UserID)

		// replay recent history oldest first; client.send bails out if the
		// hub drops the client mid-replay
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			msgs, err := recentMessages(ctx, city)
			if err != nil {
				log.Println("history:", err)
				return
			}
			for _, m := range msgs {
				data, err := json.Marshal(m)
				if err != nil {
					continue
				}
				if !client.send(data) {
					return
				}
			}
		}()

		hub.register <- client
		go writePump(client)
		go readPump(client, hub, nickname)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for {
		select {
		case msg := <-c.Send:
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func readPump(c *Client, hub *Hub, nickname string) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("invalid payload:", err)
			continue
		}
		if in.Content == "" || len(in.Content) > maxContentSize {
			continue
		}

		msg := models.RegionMessage{
			MessageID: utils.GenerateRandomString(16),
			City:      c.City,
			UserID:    c.UserID,
			Nickname:  nickname,
			Content:   in.Content,
			CreatedAt: time.Now(),
		}
		if _, err := db.RegionChatCollection.InsertOne(context.Background(), msg); err != nil {
			log.Println("insert:", err)
			continue
		}

		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		// hot buffer so reconnects replay without hitting Mongo
		if err := rdx.RdxLPushCapped(historyKey(c.City), string(data), historyLimit); err != nil {
			log.Println("history buffer:", err)
		}
		hub.broadcast <- broadcastMsg{City: c.City, Data: data}
	}
}

func recentMessages(ctx context.Context, city string) ([]models.RegionMessage, error) {
	// Redis hot buffer first, newest-first like the Mongo query below
	if raw, err := rdx.RdxLRange(historyKey(city), 0, historyLimit-1); err == nil && len(raw) > 0 {
		history := make([]models.RegionMessage, 0, len(raw))
		for _, item := range raw {
			var m models.RegionMessage
			if err := json.Unmarshal([]byte(item), &m); err == nil {
				history = append(history, m)
			}
		}
		reverseMessages(history)
		return history, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(historyLimit)

	cur, err := db.RegionChatCollection.Find(ctx, bson.M{"city": city}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var history []models.RegionMessage
	if err := cur.All(ctx, &history); err != nil {
		return nil, err
	}
	reverseMessages(history)
	return history, nil
}

// reverseMessages flips a newest-first page into chronological order.
func reverseMessages(history []models.RegionMessage) {
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
}

func historyKey(city string) string {
	return "regionchat:" + city + ":recent"
}

func lookupNickname(ctx context.Context, userID, fallback string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member models.Member
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&member); err == nil && member.Nickname != "" {
		return member.Nickname
	}
	return fallback
}

func verifyKey(userID string) string {
	return "regionverify:" + userID
}
