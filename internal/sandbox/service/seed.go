package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
	"github.com/finconsgroup/zooadmin/internal/sandbox/store"
	"github.com/finconsgroup/zooadmin/pkg/cryptox"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

// SeedService populates an empty sandbox database with demo data: one
// user per role plus a handful of animals, enclosures and tickets, so a
// fresh sandbox is immediately usable.
type SeedService struct {
	Store store.Store
}

type seedUser struct {
	name, lastName, username, password string
	role                               zoosdk.Role
	operatorType                       *zoosdk.OperatorType
}

func opType(t zoosdk.OperatorType) *zoosdk.OperatorType { return &t }

// Run seeds demo data. It is a no-op when users already exist.
func (s *SeedService) Run(ctx context.Context) error {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("seed: check users: %w", err)
	}
	if !empty {
		return nil
	}

	users := []seedUser{
		{"Ada", "Min", "admin", "admin123", zoosdk.RoleAdmin, nil},
		{"Mara", "Bianchi", "manager", "manager123", zoosdk.RoleManager, nil},
		{"Otto", "Rossi", "operator", "operator123", zoosdk.RoleOperator, opType(zoosdk.OperatorZookeeper)},
	}

	ids := make(map[string]int64, len(users))
	for _, su := range users {
		hash, err := cryptox.HashPassword(su.password)
		if err != nil {
			return fmt.Errorf("seed: hash password for %s: %w", su.username, err)
		}
		id, err := s.Store.Users().Create(ctx, domain.User{
			Name:         su.name,
			LastName:     su.lastName,
			Username:     su.username,
			PasswordHash: hash,
			Role:         su.role,
			OperatorType: su.operatorType,
		})
		if err != nil {
			return fmt.Errorf("seed: create user %s: %w", su.username, err)
		}
		ids[su.username] = id
	}

	operatorID := ids["operator"]
	managerID := ids["manager"]

	savannaID, err := s.Store.Enclosures().Create(ctx, domain.Enclosure{
		Name:        "Savana",
		Area:        1200,
		Description: "Open savanna enclosure",
		UserID:      &managerID,
	})
	if err != nil {
		return fmt.Errorf("seed: create enclosure: %w", err)
	}

	aviaryID, err := s.Store.Enclosures().Create(ctx, domain.Enclosure{
		Name:        "Voliera",
		Area:        300,
		Description: "Tropical aviary",
	})
	if err != nil {
		return fmt.Errorf("seed: create enclosure: %w", err)
	}

	animals := []domain.Animal{
		{Name: "Leo", Category: zoosdk.CategoryMammal, Weight: 190.5, UserID: &operatorID, EnclosureID: &savannaID},
		{Name: "Zara", Category: zoosdk.CategoryMammal, Weight: 120, EnclosureID: &savannaID},
		{Name: "Iris", Category: zoosdk.CategoryBird, Weight: 1.2, EnclosureID: &aviaryID},
	}
	for _, a := range animals {
		if _, err := s.Store.Animals().Create(ctx, a); err != nil {
			return fmt.Errorf("seed: create animal %s: %w", a.Name, err)
		}
	}

	today := time.Now().Format("2006-01-02")
	tickets := []domain.Ticket{
		{
			Title:           "Controllo recinzione savana",
			RecommendedRole: zoosdk.OperatorSecurityGuard,
			Urgency:         zoosdk.UrgencyHigh,
			CreationDate:    today,
			Description:     "Fence panel loose on the north side",
		},
		{
			Title:           "Visita veterinaria Leo",
			RecommendedRole: zoosdk.OperatorVeterinarian,
			Urgency:         zoosdk.UrgencyMedium,
			CreationDate:    today,
			Description:     "Routine checkup",
			UserID:          &operatorID,
		},
	}
	for _, t := range tickets {
		if _, err := s.Store.Tickets().Create(ctx, t); err != nil {
			return fmt.Errorf("seed: create ticket %s: %w", t.Title, err)
		}
	}

	return nil
}
