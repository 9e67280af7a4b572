// Package retry повторяет обращения к внешним сервисам при временных сбоях сети.
package retry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	goretry "github.com/sethvargo/go-retry"
	"google.golang.org/api/googleapi"
)

// Policy - сколько раз и с какой паузой повторять вызов
type Policy struct {
	Attempts uint64        // всего попыток, включая первую
	Base     time.Duration // первая пауза, дальше растёт экспоненциально
}

// DefaultPolicy - три попытки с паузами 1.5с и 3с
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Base: 1500 * time.Millisecond}
}

// Classifier решает, стоит ли повторять вызов после ошибки
type Classifier func(err error) bool

// Do выполняет fn, повторяя её пока classify считает ошибку временной
func Do(ctx context.Context, p Policy, classify Classifier, fn func(ctx context.Context) error) error {
	if p.Attempts == 0 {
		p.Attempts = 1
	}
	if p.Base <= 0 {
		p.Base = time.Millisecond
	}

	backoff := goretry.WithMaxRetries(p.Attempts-1, goretry.NewExponential(p.Base))

	return goretry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if classify != nil && classify(err) {
			return goretry.RetryableError(err)
		}
		return err
	})
}

// IsNetwork - таймауты и сетевые ошибки
func IsNetwork(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsGoogleTransient - 429 и 5xx от Google API плюс сетевые ошибки
func IsGoogleTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return IsNetwork(err)
}
