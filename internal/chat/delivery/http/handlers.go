package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/chat"
	"conversational-task-assistant/pkg/response"
)

// SendMessage godoc
// @Summary     Talk to the assistant
// @Description Sends one utterance and returns the assistant's reply. Replies always carry
// @Description a message, even when the action failed (see success).
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body     sendMessageReq true "Utterance"
// @Success     200  {object} chat.ReplyOutput
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/messages [POST]
func (h *handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Reply(ctx, req.toScope(), req.toInput())
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) || errors.Is(err, chat.ErrMissingUser) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "internal.chat.delivery.http.SendMessage: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, out)
}
