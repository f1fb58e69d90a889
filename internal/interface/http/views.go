package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
)

// API views. Durations travel as whole minutes; the balance additionally
// carries its display form ("-3h 15min").

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"email":         u.Email,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"phone_number":  u.PhoneNumber,
		"location":      u.Location,
		"description":   u.Description,
		"time_sent":     int64(u.TimeSent / time.Minute),
		"time_received": int64(u.TimeReceived / time.Minute),
		"balance":       entity.FormatBalance(u.Balance()),
		"is_active":     u.IsActive,
		"date_joined":   u.CreatedAt,
	}
}

func userViews(users []*entity.User) []gin.H {
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userView(u))
	}
	return out
}

func offerView(o *entity.Offer) gin.H {
	return gin.H{
		"id":           o.ID,
		"user":         o.UserID,
		"title":        o.Title,
		"description":  o.Description,
		"duration":     int64(o.Duration / time.Minute),
		"is_online":    o.IsOnline,
		"is_active":    o.IsActive,
		"location":     o.Location,
		"publish_date": o.PublishDate,
	}
}

func offerViews(offers []*entity.Offer) []gin.H {
	out := make([]gin.H, 0, len(offers))
	for _, o := range offers {
		out = append(out, offerView(o))
	}
	return out
}

func transactionView(t *entity.Transaction) gin.H {
	var offer any
	if t.OfferID != "" {
		offer = t.OfferID
	}
	return gin.H{
		"id":       t.ID,
		"sender":   t.SenderID,
		"receiver": t.ReceiverID,
		"offer":    offer,
		"title":    t.Title,
		"text":     t.Text,
		"duration": int64(t.Duration / time.Minute),
		"datetime": t.CreatedAt,
	}
}

func transactionViews(txs []*entity.Transaction) []gin.H {
	out := make([]gin.H, 0, len(txs))
	for _, t := range txs {
		out = append(out, transactionView(t))
	}
	return out
}
