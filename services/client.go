package services

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/habeshabingo/rounds-backend/game"
)

type Client struct {
	userID uint
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	once   sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// sendError reports a command failure to this client only.
func (c *Client) sendError(err error) {
	c.hub.Unicast(c.userID, errorEvent{Type: "error", Message: err.Error()})
}

// --------------------
// Client read/write pumps
// --------------------
func (c *Client) readPump() {
	defer c.hub.removeClient(c)

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[Client %d] disconnected normally", c.userID)
			} else {
				log.Printf("[Client %d] read error: %v", c.userID, err)
			}
			return
		}

		func(msg []byte) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Client %d] recovered from panic: %v", c.userID, r)
				}
			}()
			c.dispatch(msg)
		}(message)
	}
}

// dispatch routes one inbound command to the engine. Validation failures
// go back to this client only, never broadcast.
func (c *Client) dispatch(msg []byte) {
	var data map[string]any
	if err := json.Unmarshal(msg, &data); err != nil {
		log.Printf("[Client %d] invalid message: %v", c.userID, err)
		return
	}

	engine := c.hub.engine

	stake := 0
	if f, ok := data["stake"].(float64); ok {
		stake = int(f)
	}

	switch data["action"] {
	case "start_round":
		if err := engine.StartRound(stake); err != nil {
			log.Printf("[Client %d] start_round failed: %v", c.userID, err)
			c.sendError(err)
		}
	case "stop_round":
		if err := engine.StopRound(stake); err != nil {
			c.sendError(err)
		}
	case "claim_bingo":
		cardIDFloat, ok := data["card_id"].(float64)
		if !ok {
			log.Printf("[Client %d] invalid card_id: %v", c.userID, data["card_id"])
			return
		}
		if err := engine.SubmitClaim(stake, c.userID, int(cardIDFloat)); err != nil {
			if errors.Is(err, game.ErrNoActiveRound) || errors.Is(err, game.ErrGameAlreadyEnded) {
				c.sendError(err)
				return
			}
			log.Printf("[Client %d] claim failed: %v", c.userID, err)
			c.sendError(err)
		}
	case "round_state":
		snap, err := engine.RoundState(stake)
		if err != nil {
			c.sendError(err)
			return
		}
		c.hub.Unicast(c.userID, snap)
	case "reset_round":
		if err := engine.ResetRound(stake); err != nil {
			c.sendError(err)
		}
	case "timer_states":
		c.hub.Unicast(c.userID, game.TimerStatesEvent{
			Type:   game.EventTimerStates,
			Timers: engine.TimerStates(),
		})
	default:
		log.Printf("[Client %d] unknown action: %v", c.userID, data["action"])
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[Client %d] write error: %v", c.userID, err)
			return
		}
	}
}
