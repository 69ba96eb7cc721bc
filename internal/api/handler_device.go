package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"manufacturing-backend/internal/device"
	"manufacturing-backend/internal/record"
)

// ExecuteDeviceCommand handles POST /device/commands.
func (h *Handler) ExecuteDeviceCommand(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// A non-string command is just an unsupported one.
	command, _ := fields["command"].(string)
	params, _ := fields["parameters"].(map[string]any)

	res, err := h.device.Execute(c.Request.Context(), device.Request{
		Command:    command,
		Parameters: params,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, record.FromDeviceResult(res))
}
