package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/profile"
	"github.com/pos/backend/internal/domain/shared"
)

// ProfileService handles terminal profile management
type ProfileService struct {
	profileRepo profile.Repository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo profile.Repository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Create creates a new terminal profile
func (s *ProfileService) Create(ctx context.Context, req CreateProfileRequest) (*ProfileResponse, error) {
	exists, err := s.profileRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_PROFILE", fmt.Sprintf("Profile %s already exists", req.Name))
	}

	p, err := profile.NewProfile(req.Name, req.CompanyID, req.CompanyName)
	if err != nil {
		return nil, err
	}
	for _, method := range req.PaymentMethods {
		if err := p.AddPaymentMethod(method); err != nil {
			return nil, err
		}
	}
	if req.CashMethod != "" {
		if err := p.SetCashMethod(req.CashMethod); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToProfileResponse(p)
	return &response, nil
}

// GetByID retrieves a profile by ID
func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProfileResponse(p)
	return &response, nil
}

// List returns a page of profiles
func (s *ProfileService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProfileResponse], error) {
	profiles, err := s.profileRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.profileRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = ToProfileResponse(&profiles[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates profile settings
func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CashMethod != nil {
		if err := p.SetCashMethod(*req.CashMethod); err != nil {
			return nil, err
		}
	}
	if req.AutoDeleteDrafts != nil {
		p.AutoDeleteDrafts = *req.AutoDeleteDrafts
	}
	if req.HideExpectedAmounts != nil {
		p.HideExpectedAmounts = *req.HideExpectedAmounts
	}
	if req.Disabled != nil {
		if *req.Disabled {
			p.Disable()
		} else {
			p.Enable()
		}
	}

	if err := s.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToProfileResponse(p)
	return &response, nil
}

// SetWindows configures the opening and closing time windows
func (s *ProfileService) SetWindows(ctx context.Context, id uuid.UUID, req SetWindowsRequest) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Opening != nil {
		p.SetOpeningWindow(req.Opening.Enabled, req.Opening.Start, req.Opening.End)
	}
	if req.Closing != nil {
		p.SetClosingWindow(req.Closing.Enabled, req.Closing.Start, req.Closing.End)
	}
	if err := s.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToProfileResponse(p)
	return &response, nil
}

// AddPaymentMethod registers a payment method on a profile
func (s *ProfileService) AddPaymentMethod(ctx context.Context, id uuid.UUID, method string) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.AddPaymentMethod(method); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToProfileResponse(p)
	return &response, nil
}

// AuthorizeUser grants a cashier access to a profile
func (s *ProfileService) AuthorizeUser(ctx context.Context, id uuid.UUID, req AuthorizeUserRequest) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.AuthorizeUser(req.UserID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToProfileResponse(p)
	return &response, nil
}

// RevokeUser removes a cashier's access to a profile
func (s *ProfileService) RevokeUser(ctx context.Context, id, userID uuid.UUID) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.RevokeUser(userID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToProfileResponse(p)
	return &response, nil
}

// Delete removes a profile
func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.profileRepo.Delete(ctx, id)
}
