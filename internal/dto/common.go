package dto

import "github.com/yukikurage/lynxview-api/internal/models"

// MessageResponse carries a plain confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

func projectSummaryOf(project *models.Project) *ProjectSummary {
	if project == nil || project.ID == 0 {
		return nil
	}
	summary := ToProjectSummary(*project)
	return &summary
}

func userSummaryOf(user *models.User) *UserSummary {
	if user == nil || user.ID == 0 {
		return nil
	}
	summary := ToUserSummary(*user)
	return &summary
}
