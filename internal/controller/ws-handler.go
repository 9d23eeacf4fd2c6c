package controller

import (
	"net/http"
)

// ServeFrame accepts the websocket connection of an embedded frame. Only
// frames of registered players may connect.
func (c Controller) ServeFrame(w http.ResponseWriter, r *http.Request) {
	p, ok := c.lookupPlayer(w, r)
	if !ok {
		return
	}

	if err := c.hub.ServeFrame(w, r, p.ID()); err != nil {
		c.logger.InfoContext(r.Context(), "ServeFrame", "err", err)
	}
}
