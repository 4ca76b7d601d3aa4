package dao

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"slices"
	"strconv"
	"strings"

	"github.com/ppanel/ppadmin/internal/api"
)

// ConfigSections lists the editable system configuration sections.
var ConfigSections = []string{
	"currency",
	"email_smtp",
	"invite",
	"node",
	"register",
	"site",
	"subscribe",
	"telegram",
	"tos",
	"verify",
}

// PaymentSections lists the payment method configurations. They share the
// config editor with the system sections.
var PaymentSections = []string{
	"alipay_f2f",
	"epay",
	"stripe_wechat_pay",
}

// Payment fee modes.
const (
	FeeModeNone = iota
	FeeModePercent
	FeeModeFixed
	FeeModeMixed
)

const smtpTestPath = "/v1/admin/system/test_email_smtp"

// EditableSections returns every section the config editor can open, system
// sections first.
func EditableSections() []string {
	return slices.Concat(ConfigSections, PaymentSections)
}

// IsPaymentSection checks if a section holds a payment method config.
func IsPaymentSection(section string) bool {
	return slices.Contains(PaymentSections, section)
}

// SystemConfig reads and writes system and payment configuration sections.
type SystemConfig struct {
	factory Factory
}

// NewSystemConfig returns a system configuration accessor.
func NewSystemConfig(f Factory) *SystemConfig {
	return &SystemConfig{factory: f}
}

func configPath(section string) (string, error) {
	switch {
	case slices.Contains(ConfigSections, section):
		return "/v1/admin/system/" + section + "_config", nil
	case IsPaymentSection(section):
		return "/v1/admin/payment/" + section + "_config", nil
	default:
		return "", fmt.Errorf("config section %q: %w", section, ErrNotFound)
	}
}

func (s *SystemConfig) conn() (api.Connection, error) {
	if s.factory == nil || s.factory.Client() == nil {
		return nil, api.ErrNoConnection
	}
	return s.factory.Client(), nil
}

// Get returns a configuration section.
func (s *SystemConfig) Get(ctx context.Context, section string) (map[string]any, error) {
	path, err := configPath(section)
	if err != nil {
		return nil, err
	}
	c, err := s.conn()
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	if err := c.Get(ctx, path, nil, &out); err != nil {
		return nil, fmt.Errorf("get %s config: %w", section, err)
	}

	return out, nil
}

// Update stores a configuration section.
func (s *SystemConfig) Update(ctx context.Context, section string, cfg map[string]any) error {
	path, err := configPath(section)
	if err != nil {
		return err
	}
	if IsPaymentSection(section) {
		if err := validatePayment(cfg); err != nil {
			return fmt.Errorf("%s config: %w", section, err)
		}
	}
	c, err := s.conn()
	if err != nil {
		return err
	}
	if err := c.Put(ctx, path, cfg, nil); err != nil {
		return fmt.Errorf("update %s config: %w", section, err)
	}

	return nil
}

// TestSMTP asks the server to send a test mail through the stored SMTP
// settings.
func (s *SystemConfig) TestSMTP(ctx context.Context, email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return fmt.Errorf("test email %q: %w", email, err)
	}
	c, err := s.conn()
	if err != nil {
		return err
	}
	if err := c.Post(ctx, smtpTestPath, map[string]string{"email": addr.Address}, nil); err != nil {
		return fmt.Errorf("send test email to %s: %w", addr.Address, err)
	}

	return nil
}

// validatePayment checks the fee settings of a payment config. Fee percent
// is a whole percentage and fee amount is in minor units.
func validatePayment(cfg map[string]any) error {
	if v, ok := cfg["fee_mode"]; ok {
		m, err := toInt64(v)
		if err != nil || m < FeeModeNone || m > FeeModeMixed {
			return fmt.Errorf("fee_mode %v: want 0 to 3", v)
		}
	}
	if v, ok := cfg["fee_percent"]; ok {
		p, err := toInt64(v)
		if err != nil || p < 0 || p > 100 {
			return fmt.Errorf("fee_percent %v: want 0 to 100", v)
		}
	}
	if v, ok := cfg["fee_amount"]; ok {
		a, err := toInt64(v)
		if err != nil || a < 0 {
			return fmt.Errorf("fee_amount %v: want a non negative amount", v)
		}
	}
	if v, ok := cfg["config"]; ok && v != nil {
		if _, ok := v.(map[string]any); !ok {
			return fmt.Errorf("config: want a mapping, got %T", v)
		}
	}

	return nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return int64(n), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}
