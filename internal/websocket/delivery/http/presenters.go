package http

import (
	"alert-srv/internal/model"
	"alert-srv/internal/websocket"

	gorilla "github.com/gorilla/websocket"
)

// --- Request DTOs ---

type UpgradeReq struct {
	Token string `form:"token"`
}

func (r UpgradeReq) validate() error {
	if r.Token == "" {
		return websocket.ErrMissingToken
	}
	return nil
}

func toAdmitInput(sc model.Scope) websocket.AdmitInput {
	return websocket.AdmitInput{Scope: sc}
}

func toConnectionInput(conn *gorilla.Conn, sc model.Scope) websocket.ConnectionInput {
	return websocket.ConnectionInput{
		Scope: sc,
		Conn:  conn,
	}
}
