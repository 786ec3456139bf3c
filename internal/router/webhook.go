package router

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/fridaybot/backend/internal/conversation"
	"github.com/fridaybot/backend/internal/models"
	"github.com/fridaybot/backend/internal/sms"
)

// WebhookController handles inbound messages from the messaging provider.
type WebhookController struct {
	Service *conversation.Service
	Sender  sms.Sender
}

// InboundMessage is the form Twilio posts for each received message.
type InboundMessage struct {
	From string `form:"From" binding:"required"`
	Body string `form:"Body" binding:"required"`
}

// InboundSMS processes one received message and sends the replies back to
// the user. The webhook always answers 204, Twilio interprets the response
// body as a message to deliver and we deliver over the REST API instead.
func (co *WebhookController) InboundSMS(c *gin.Context) {
	var inbound InboundMessage
	if err := c.ShouldBind(&inbound); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both From and Body are required"})
		return
	}

	user, err := models.UserByPhone(models.DB, inbound.From)
	if err != nil {
		log.Error().Err(err).Msg("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "oops, something went wrong"})
		return
	}

	replies, err := co.Service.Process(c.Request.Context(), &user, inbound.Body)
	if err != nil {
		log.Error().Err(err).Str("request-id", requestid.Get(c)).Msg("message processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "oops, something went wrong"})
		return
	}

	inboundMessageCount.WithLabelValues(string(user.State)).Inc()

	for _, reply := range replies {
		var err error
		if reply.Kind == conversation.ReplyMedia {
			err = co.Sender.SendMedia(c.Request.Context(), user.PhoneNumber, "", reply.Content)
		} else {
			err = co.Sender.Send(c.Request.Context(), user.PhoneNumber, reply.Content)
		}

		// Delivery failures don't fail the webhook, Twilio would retry
		// the whole message otherwise.
		if err != nil {
			log.Error().Err(err).Str("to", user.PhoneNumber).Msg("reply delivery failed")
		}
	}

	c.Status(http.StatusNoContent)
}
