package service

import (
	"context"
	"time"

	"offer_generator_backend/internal/offers/domain"
	"offer_generator_backend/platform/apperr"

	"github.com/google/uuid"
)

// edit applies fn to the user's offer, marks the session dirty and
// interacted, and restarts the auto-save debounce.
func (s *Service) edit(ctx context.Context, userID uuid.UUID, fn func(domain.Offer) domain.Offer) (State, error) {
	if userID == uuid.Nil {
		return State{}, nil
	}
	sess := s.session(ctx, userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.offer = fn(sess.offer)
	sess.dirty = true
	sess.interacted = true
	sess.revision++
	s.scheduleLocked(sess)
	return sess.stateLocked(), nil
}

// UpdateCompanyInfo merges patch into the company snapshot.
func (s *Service) UpdateCompanyInfo(ctx context.Context, userID uuid.UUID, patch domain.CompanyPatch) (State, error) {
	return s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		return domain.UpdateCompanyInfo(o, patch)
	})
}

// UpdateClientInfo merges patch into the client snapshot.
func (s *Service) UpdateClientInfo(ctx context.Context, userID uuid.UUID, patch domain.ClientPatch) (State, error) {
	return s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		return domain.UpdateClientInfo(o, patch)
	})
}

// UpdateOfferDetails merges patch into the offer details.
func (s *Service) UpdateOfferDetails(ctx context.Context, userID uuid.UUID, patch domain.DetailsPatch) (State, error) {
	return s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		return domain.UpdateOfferDetails(o, patch)
	})
}

// AddProduct appends a product and returns the id it was given.
func (s *Service) AddProduct(ctx context.Context, userID uuid.UUID, product domain.Product) (State, string, error) {
	var id string
	st, err := s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		var out domain.Offer
		out, id = domain.AddProduct(o, product)
		return out
	})
	return st, id, err
}

// UpdateProduct merges patch into one product. Unknown ids change nothing.
func (s *Service) UpdateProduct(ctx context.Context, userID uuid.UUID, productID string, patch domain.ProductPatch) (State, error) {
	return s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		return domain.UpdateProduct(o, productID, patch)
	})
}

// RemoveProduct drops one product. Unknown ids change nothing.
func (s *Service) RemoveProduct(ctx context.Context, userID uuid.UUID, productID string) (State, error) {
	return s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		return domain.RemoveProduct(o, productID)
	})
}

// ClearProducts empties the product list.
func (s *Service) ClearProducts(ctx context.Context, userID uuid.UUID) (State, error) {
	return s.edit(ctx, userID, domain.ClearProducts)
}

// ResetProducts replaces the product list.
func (s *Service) ResetProducts(ctx context.Context, userID uuid.UUID, products []domain.Product) (State, error) {
	return s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		return domain.ResetProducts(o, products)
	})
}

// MoveProduct moves one product to a new position.
func (s *Service) MoveProduct(ctx context.Context, userID uuid.UUID, productID string, to int) (State, error) {
	return s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		return domain.MoveProduct(o, productID, to)
	})
}

// SaveBundle stores the bundle contents of a product and reprices it.
func (s *Service) SaveBundle(ctx context.Context, userID uuid.UUID, productID string, items []domain.BundledProduct) (State, error) {
	return s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		return domain.SaveBundle(o, productID, items)
	})
}

// ApplyTemplate overlays tpl on the user's offer.
func (s *Service) ApplyTemplate(ctx context.Context, userID uuid.UUID, tpl domain.Template) (State, error) {
	return s.edit(ctx, userID, func(o domain.Offer) domain.Offer {
		return domain.ApplyTemplate(o, tpl)
	})
}

// ApplyCatalogTemplate overlays the catalog template with code.
func (s *Service) ApplyCatalogTemplate(ctx context.Context, userID uuid.UUID, code string) (State, error) {
	if userID == uuid.Nil {
		return State{}, nil
	}
	if s.templates == nil {
		return State{}, apperr.NotFound("template not found")
	}
	tpl, ok := s.templates.Template(code)
	if !ok {
		return State{}, apperr.NotFound("template not found")
	}
	return s.ApplyTemplate(ctx, userID, tpl)
}

// ApplySavedOffer loads a saved offer into the editor as a new copy.
func (s *Service) ApplySavedOffer(ctx context.Context, userID, offerID uuid.UUID) (State, error) {
	if userID == uuid.Nil {
		return State{}, nil
	}
	if s.reader == nil {
		return State{}, apperr.NotFound("offer not found")
	}
	saved, err := s.reader.GetOffer(ctx, userID, offerID)
	if err != nil {
		return State{}, err
	}
	if saved == nil {
		return State{}, apperr.NotFound("offer not found")
	}
	return s.ApplyTemplate(ctx, userID, domain.TemplateFromOffer(*saved))
}

// scheduleLocked restarts the trailing debounce. Conditions are checked when
// the timer fires, not here.
func (s *Service) scheduleLocked(sess *session) {
	sess.stopTimerLocked()
	gen := sess.generation
	sess.timer = time.AfterFunc(s.debounce, func() {
		s.autoSave(sess, gen)
	})
}

func (s *Service) autoSave(sess *session, gen uint64) {
	sess.mu.Lock()
	eligible := !sess.closed &&
		sess.generation == gen &&
		sess.interacted &&
		sess.dirty &&
		sess.autoSave &&
		!sess.loading
	sess.mu.Unlock()
	if !eligible {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), autoSaveTimeout)
	defer cancel()

	if _, err := s.persist(ctx, sess, gen, false); err != nil {
		s.log.StoreError("offer_drafts", "auto_save", err)
	}
}
