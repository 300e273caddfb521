package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories"
	"github.com/Dosada05/cricket-league/storage"
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

func validateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return validationError("start date and end date are required")
	}
	if !start.Before(end) {
		return ErrInvalidDateRange
	}
	return nil
}

// requireTeams checks that every referenced team exists. A missing
// reference on create/update is a validation failure, not a 404.
func requireTeams(ctx context.Context, teamRepo repositories.TeamRepository, teamIDs []string) error {
	seen := make(map[string]struct{}, len(teamIDs))
	for _, teamID := range teamIDs {
		if _, dup := seen[teamID]; dup {
			return validationError("duplicate team id %s", teamID)
		}
		seen[teamID] = struct{}{}

		if _, err := teamRepo.GetByID(ctx, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return validationError("team %s not found", teamID)
			}
			return err
		}
	}
	return nil
}

func validateScore(score *models.Score) error {
	if score == nil {
		return nil
	}
	if score.Runs < 0 {
		return validationError("runs cannot be negative")
	}
	if score.Wickets < 0 || score.Wickets > 10 {
		return validationError("wickets must be between 0 and 10")
	}
	if score.Overs < 0 {
		return validationError("overs cannot be negative")
	}
	return nil
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil || team.LogoKey == nil || uploader == nil {
		return
	}
	if url := uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func extensionForContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		if strings.HasPrefix(contentType, "image/") {
			return "." + strings.Split(strings.TrimPrefix(contentType, "image/"), "+")[0], nil
		}
		return "", validationError("unsupported logo content type %q", contentType)
	}
}
