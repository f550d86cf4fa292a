// Package checkout persists the checkout form draft so a half-completed
// form survives a restart. Each field is stored under its own key, matching
// the web client's localStorage layout.
package checkout

import (
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-storefront/persist"
)

// Draft is the checkout delivery form.
type Draft struct {
	Name    string
	Area    string
	Block   string
	Street  string
	Avenue  string
	HouseNo string
	Phone   string
	Email   string
	Notes   string
}

const (
	keyName    = "ck_name"
	keyArea    = "ck_area"
	keyBlock   = "ck_block"
	keyStreet  = "ck_street"
	keyAvenue  = "ck_avenue"
	keyHouseNo = "ck_houseNo"
	keyPhone   = "ck_phone"
	keyEmail   = "ck_email"
	keyNotes   = "ck_notes"
)

func fields(d *Draft) map[string]*string {
	return map[string]*string{
		keyName:    &d.Name,
		keyArea:    &d.Area,
		keyBlock:   &d.Block,
		keyStreet:  &d.Street,
		keyAvenue:  &d.Avenue,
		keyHouseNo: &d.HouseNo,
		keyPhone:   &d.Phone,
		keyEmail:   &d.Email,
		keyNotes:   &d.Notes,
	}
}

// Load reads the persisted draft. Missing or unreadable fields come back
// empty.
func Load(s persist.Store) Draft {
	var d Draft
	for key, field := range fields(&d) {
		raw, err := s.Load(key)
		if err != nil {
			if !persist.IsNotFound(err) {
				log.Warn().Err(err).Str("key", key).Msg("Failed to read checkout draft field")
			}
			continue
		}
		*field = string(raw)
	}
	return d
}

// Save writes every draft field. Failures are logged and swallowed.
func Save(s persist.Store, d Draft) {
	for key, field := range fields(&d) {
		if err := s.Save(key, []byte(*field)); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to persist checkout draft field")
		}
	}
}

// Clear removes all draft fields, typically after a successful order.
func Clear(s persist.Store) {
	var d Draft
	for key := range fields(&d) {
		if err := s.Delete(key); err != nil && !persist.IsNotFound(err) {
			log.Warn().Err(err).Str("key", key).Msg("Failed to clear checkout draft field")
		}
	}
}
