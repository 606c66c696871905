// Package whatsapp adapts a whatsmeow session to the small messaging
// capability the order path consumes: a readiness flag, a registration
// check and a plain-text send.
package whatsapp

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"

	"github.com/brunohmiro/zapfood/internal/order/domain"
)

type Client struct {
	log    *slog.Logger
	wa     *whatsmeow.Client
	status *Status
}

// NewClient opens the whatsmeow device store (sqlite) and builds the client.
// The session is not connected yet; call Connect.
func NewClient(ctx context.Context, log *slog.Logger, sessionDB string) (*Client, error) {
	waLogger := waLog.Stdout("whatsmeow", "WARN", true)
	container, err := sqlstore.New(ctx, "sqlite3", "file:"+sessionDB+"?_foreign_keys=on", waLogger)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("get device: %w", err)
	}

	c := &Client{
		log:    log,
		wa:     whatsmeow.NewClient(device, waLogger),
		status: NewStatus(),
	}
	c.wa.AddEventHandler(c.handleEvent)
	return c, nil
}

// Status exposes the session gate read by the order path.
func (c *Client) Status() *Status { return c.status }

// Connect establishes the session. On a fresh device the QR codes are logged
// so the operator can pair a phone; the Connected event flips the gate to
// ready once pairing completes.
func (c *Client) Connect(ctx context.Context) error {
	if c.wa.Store.ID == nil {
		qrChan, err := c.wa.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("qr channel: %w", err)
		}
		if err := c.wa.Connect(); err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		go func() {
			for evt := range qrChan {
				switch evt.Event {
				case "code":
					c.log.Info("scan QR code to pair session", "code", evt.Code)
				case "success":
					c.log.Info("session paired")
				default:
					c.log.Warn("pairing ended", "event", evt.Event)
				}
			}
		}()
		return nil
	}
	if err := c.wa.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

func (c *Client) Disconnect() {
	c.wa.Disconnect()
}

func (c *Client) handleEvent(evt interface{}) {
	switch e := evt.(type) {
	case *events.PairSuccess:
		// authenticated, but not ready until Connected arrives
		c.log.Info("session authenticated", "jid", e.ID.User)
	case *events.Connected:
		c.status.set(domain.SessionReady)
		c.log.Info("session ready")
	case *events.Disconnected:
		c.status.set(domain.SessionDisconnected)
		c.log.Warn("session disconnected")
	case *events.LoggedOut:
		c.status.set(domain.SessionDisconnected)
		c.log.Warn("session logged out", "reason", e.Reason)
	}
}

// IsRegistered reports whether the canonical phone belongs to a real
// messaging account. Callers treat failures as best-effort.
func (c *Client) IsRegistered(ctx context.Context, phone string) (bool, error) {
	resp, err := c.wa.IsOnWhatsApp(ctx, []string{"+" + phone})
	if err != nil {
		return false, fmt.Errorf("is on whatsapp: %w", err)
	}
	if len(resp) == 0 {
		return false, nil
	}
	return resp[0].IsIn, nil
}

// SendText delivers a plain-text message to the canonical phone.
func (c *Client) SendText(ctx context.Context, phone, text string) error {
	jid := types.NewJID(phone, types.DefaultUserServer)
	_, err := c.wa.SendMessage(ctx, jid, &waE2E.Message{Conversation: proto.String(text)})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
