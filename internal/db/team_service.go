package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Thaumonaut/cosplans/internal/models"
)

// FindOrCreateTeam looks a team up by name, creating it (with the default
// stage workflow) on first use.
func FindOrCreateTeam(name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "team", Reason: "must not be empty"}
	}

	var team models.Team
	err := DB.Where("name = ?", name).First(&team).Error
	if err == nil {
		return &team, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	team = models.Team{Name: name}
	if err := DB.Create(&team).Error; err != nil {
		return nil, err
	}

	if _, err := EnsureDefaultStages(team.ID); err != nil {
		return nil, err
	}

	return &team, nil
}

// GetTeam fetches a team by ID
func GetTeam(teamID uint) (*models.Team, error) {
	var team models.Team
	if err := DB.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "team", ID: teamID}
		}
		return nil, err
	}
	return &team, nil
}
