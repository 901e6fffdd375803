package models

import "encoding/json"

// HistoryEntry is one line of the append-only selection log.
type HistoryEntry struct {
	SelectedAtUnix int64  `json:"selected_at_unix"`
	Identity       string `json:"identity"`
	AccountID      string `json:"account_id"`
	AccountName    string `json:"account_name"`
	RoleName       string `json:"role_name"`
	Cwd            string `json:"cwd,omitempty"`
}

// UnmarshalJSON accepts the legacy "cwd_hash" field name older logs used.
func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	type alias HistoryEntry
	aux := struct {
		*alias
		CwdHash string `json:"cwd_hash"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.Cwd == "" && aux.CwdHash != "" {
		e.Cwd = aux.CwdHash
	}
	return nil
}
