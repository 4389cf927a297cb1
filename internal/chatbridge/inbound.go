package chatbridge

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/internal/messages"
	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
)

// orderCodePattern matches the #ORDERCODE reference staff include in replies.
var orderCodePattern = regexp.MustCompile(`#(ORD\d{9})`)

type orderResolver interface {
	FindOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
}

type threadPoster interface {
	Post(ctx context.Context, input messages.PostInput) (*models.OrderMessage, error)
}

// Inbound turns Slack channel replies into order messages. Replies are
// attributed to the staff member who owns the order.
type Inbound struct {
	orders   orderResolver
	messages threadPoster
}

// NewInbound builds the inbound bridge.
func NewInbound(orders orderResolver, poster threadPoster) (*Inbound, error) {
	if orders == nil {
		return nil, fmt.Errorf("order resolver required")
	}
	if poster == nil {
		return nil, fmt.Errorf("message poster required")
	}
	return &Inbound{orders: orders, messages: poster}, nil
}

// ExtractOrderCode returns the first #ORDERCODE reference in the text, or ""
// when the text carries none.
func ExtractOrderCode(text string) string {
	match := orderCodePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// HandleMessage records a Slack reply on the referenced order thread. Texts
// without an order code are ignored.
func (i *Inbound) HandleMessage(ctx context.Context, senderName, text string) (*models.OrderMessage, error) {
	code := ExtractOrderCode(text)
	if code == "" {
		return nil, nil
	}

	body := strings.TrimSpace(strings.Replace(text, "#"+code, "", 1))
	if body == "" {
		return nil, nil
	}

	order, err := i.orders.FindOrderByNumber(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}

	if senderName == "" {
		senderName = "Slack"
	}
	return i.messages.Post(ctx, messages.PostInput{
		OrderID:    order.ID,
		SenderID:   order.StaffID,
		SenderRole: enums.UserRoleStaff,
		SenderName: senderName,
		Body:       body,
		Source:     enums.MessageSourceSlack,
	})
}
