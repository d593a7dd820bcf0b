package http

import (
	"io"
	"net/http"

	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
	"github.com/staffhold/hr-backoffice-go/internal/handler/http/response"
)

// Access controllers retry aggressively on non-200 answers, so this endpoint
// acknowledges everything it manages to read. Drops are logged server side.
type DeviceHandler interface {
	HandleEvent(w http.ResponseWriter, r *http.Request)
}

type deviceHandlerImpl struct {
	eventService event.Service
}

func NewDeviceHandler(eventService event.Service) DeviceHandler {
	return &deviceHandlerImpl{eventService: eventService}
}

// HandleEvent implements DeviceHandler.
func (h *deviceHandlerImpl) HandleEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		// Even an unreadable body gets a 200.
		response.Success(w, nil)
		return
	}

	h.eventService.RegisterDevice(r.Context(), payload)

	response.Success(w, nil)
}
