package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aura-hub/aurahub"
)

// handleEvents streams change notifications as server-sent events. Each signal
// becomes one SSE event named after its topic; clients re-fetch the list
// endpoints on receipt.
func (server *Server) handleEvents(c echo.Context) error {
	response := c.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	products := server.store.Subscribe(aurahub.TopicProducts)
	defer products.Close()
	orders := server.store.Subscribe(aurahub.TopicOrders)
	defer orders.Close()

	ctx := c.Request().Context()
	for {
		var topic aurahub.Topic
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-products.C:
			if !ok {
				return nil
			}
			topic = aurahub.TopicProducts
		case _, ok := <-orders.C:
			if !ok {
				return nil
			}
			topic = aurahub.TopicOrders
		}

		if _, err := fmt.Fprintf(response, "event: %s\ndata: {}\n\n", topic); err != nil {
			return nil
		}
		response.Flush()
	}
}
