package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNegativeMonthlyFee = errors.New("monthly fee must not be negative")

// ContractedServices representa os serviços contratados por um projeto
type ContractedServices struct {
	Channels    []string         `json:"channels"`
	PackageName *string          `json:"package_name,omitempty"`
	StartDate   *Date            `json:"start_date,omitempty"`
	RenewalDate *Date            `json:"renewal_date,omitempty"`
	MonthlyFee  *decimal.Decimal `json:"monthly_fee,omitempty"`
}

// Normalize garante que Channels nunca é nulo e trata os canais como conjunto:
// remove vazios e duplicados mantendo a primeira ocorrência.
func (c *ContractedServices) Normalize() {
	channels := make([]string, 0, len(c.Channels))
	seen := make(map[string]struct{}, len(c.Channels))

	for _, ch := range c.Channels {
		ch = strings.TrimSpace(ch)
		if ch == "" {
			continue
		}
		if _, exists := seen[ch]; exists {
			continue
		}
		seen[ch] = struct{}{}
		channels = append(channels, ch)
	}

	c.Channels = channels
}

func (c *ContractedServices) Validate() error {
	if c.MonthlyFee != nil && c.MonthlyFee.IsNegative() {
		return ErrNegativeMonthlyFee
	}
	return nil
}

func (c *ContractedServices) HasChannel(channel string) bool {
	if c == nil {
		return false
	}

	for _, ch := range c.Channels {
		if ch == channel {
			return true
		}
	}
	return false
}

// EmptyContractedServices é o valor exposto quando o projeto não tem serviços
func EmptyContractedServices() ContractedServices {
	return ContractedServices{Channels: []string{}}
}
