package domain

import "time"

// MetaAdAccount é uma conta de anúncios do Meta vinculada (ou não) a um projeto
type MetaAdAccount struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id,omitempty"`
	AccountName string    `json:"account_name"`
	ProjectID   *string   `json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
}
