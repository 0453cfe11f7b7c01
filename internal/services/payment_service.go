package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payhub-backend/config"
	"payhub-backend/internal/database"
	"payhub-backend/internal/payment"
	"payhub-backend/internal/payment/yookassa"
	"payhub-backend/pkg/logger"
)

const notifySeenPrefix = "notify:seen:"

// How long a processed notification id is remembered for dedup.
const notifySeenTTL = 24 * time.Hour

// RegisterDrivers wires every supported driver into the registry with its
// host configuration. Factories hand out a fresh driver per flow. A driver
// whose configuration is rejected is not registered at all: startup must
// fail instead of handing out drivers without a transport.
func RegisterDrivers(cfg *config.Config) error {
	kassaConfig := cfg.KassaConfig()
	if err := yookassa.NewDriver().SetConfig(kassaConfig); err != nil {
		return fmt.Errorf("yookassa: %w", err)
	}
	payment.Register(yookassa.Name, func() payment.Driver {
		drv := yookassa.NewDriver()
		// vetted at registration, cannot fail here
		_ = drv.SetConfig(kassaConfig)
		return drv
	})
	return nil
}

// CreatePaymentLink resolves the named driver and asks the provider for a
// redirect confirmation target.
func CreatePaymentLink(driverName string, req payment.Request) (string, error) {
	drv, err := payment.Resolve(driverName)
	if err != nil {
		return "", err
	}
	if req.Recurring {
		if rec, ok := drv.(payment.RecurringPayer); ok {
			rec.MakeRecurring()
			rec.SetUserID(req.UserID)
		}
	}
	return drv.PaymentLink(req)
}

// CreatePaymentForm resolves the named driver and creates a charge for the
// embedded-widget flow.
func CreatePaymentForm(driverName string, req payment.Request) (payment.Form, error) {
	drv, err := payment.Resolve(driverName)
	if err != nil {
		return nil, err
	}
	return drv.PaymentForm(req)
}

// InitRecurringPayment charges a stored recurring token for the given user.
func InitRecurringPayment(driverName, token, userID, paymentID string, amount decimal.Decimal, description, currency string, extra map[string]interface{}) (bool, error) {
	drv, err := payment.Resolve(driverName)
	if err != nil {
		return false, err
	}
	rec, ok := drv.(payment.RecurringPayer)
	if !ok {
		return false, &UnsupportedFeatureError{Driver: driverName, Feature: "recurring payments"}
	}
	rec.SetUserID(userID)
	return rec.InitPayment(token, paymentID, amount, description, currency, extra)
}

// NotificationResult is what a processed webhook boils down to.
type NotificationResult struct {
	Ack           string
	Valid         bool
	Duplicate     bool
	Code          payment.Code
	Status        payment.Status
	OrderID       string
	PaymentID     string
	TransactionID string
	Amount        decimal.Decimal
	Pan           string
}

// HandleNotification ingests a provider webhook: validates it, normalizes
// the outcome and dedups redeliveries by transaction id. The acknowledgment
// body is always produced, even for notifications that failed validation,
// so the provider stops redelivering.
func HandleNotification(driverName string, n payment.Notification) (*NotificationResult, error) {
	drv, err := payment.Resolve(driverName)
	if err != nil {
		return nil, err
	}

	drv.SetResponse(n)
	valid := drv.Validate(n)

	result := &NotificationResult{
		Ack:           drv.NotificationResponse(),
		Valid:         valid,
		Code:          drv.LastError(),
		Status:        drv.Status(),
		OrderID:       drv.OrderID(),
		PaymentID:     drv.PaymentID(),
		TransactionID: drv.TransactionID(),
		Amount:        drv.Amount(),
		Pan:           drv.Pan(),
	}

	if valid && result.TransactionID != "" {
		seen, err := markNotificationSeen(result.TransactionID)
		if err != nil {
			logger.Log.Warn("notification dedup unavailable",
				zap.String("transaction_id", result.TransactionID),
				zap.Error(err),
			)
		}
		result.Duplicate = seen
	}

	if !valid {
		logger.Log.Warn("notification failed validation",
			zap.String("driver", driverName),
			zap.Int("code", int(result.Code)),
			zap.String("source_ip", n.SourceIP),
		)
	} else if !result.Duplicate {
		logger.Log.Info("payment notification",
			zap.String("driver", driverName),
			zap.String("order_id", result.OrderID),
			zap.String("transaction_id", result.TransactionID),
			zap.String("status", string(result.Status)),
			zap.String("amount", result.Amount.String()),
		)
	}

	return result, nil
}

// markNotificationSeen records the transaction id and reports whether it
// was already processed. Redis SETNX keeps redelivered webhooks from
// double-firing downstream handling.
func markNotificationSeen(transactionID string) (bool, error) {
	key := notifySeenPrefix + transactionID
	created, err := database.RedisClient.SetNX(database.Ctx, key, 1, notifySeenTTL).Result()
	if err != nil {
		return false, err
	}
	return !created, nil
}
