package services

import (
	"github.com/planit-dev/planit/internal/models"
	"gorm.io/gorm"
)

// The store declares foreign keys without cascade rules, so every destroy
// walks children before parents. The delete plan per root entity lives here
// and nowhere else; handlers only pick a root and open the transaction.

// DeleteGoalCascade removes a goal and its timelines.
func DeleteGoalCascade(tx *gorm.DB, goal models.Goal) error {
	if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.Timeline{}).Error; err != nil {
		return err
	}
	return tx.Delete(&goal).Error
}

// DeleteMeetingCascade removes a meeting, its invitations, and the
// notifications those invitations produced. Request meetings notify their
// invitees about the cancellation first, while the invitation rows still
// say who was invited.
func DeleteMeetingCascade(tx *gorm.DB, meeting models.TeamMeeting) error {
	if meeting.InvitationType == models.InvitationTypeRequest {
		var invitations []models.MeetingInvitation
		if err := tx.Where("meeting_id = ?", meeting.ID).Find(&invitations).Error; err != nil {
			return err
		}
		for _, invitation := range invitations {
			if err := NotifyMeetingCancelled(tx, invitation.UserID, meeting); err != nil {
				return err
			}
		}
	}

	if err := tx.Where("meeting_id = ?", meeting.ID).Delete(&models.MeetingInvitation{}).Error; err != nil {
		return err
	}

	meetingTypes := []string{models.NotificationMeetingInvitation, models.NotificationMeetingUpdate}
	if err := tx.Where("related_id = ? AND type IN ?", meeting.ID, meetingTypes).Delete(&models.Notification{}).Error; err != nil {
		return err
	}

	return tx.Delete(&meeting).Error
}

// DeleteTeamCascade removes a team, each of its meetings (per the meeting
// plan), and its memberships.
func DeleteTeamCascade(tx *gorm.DB, team models.Team) error {
	var meetings []models.TeamMeeting
	if err := tx.Where("team_id = ?", team.ID).Find(&meetings).Error; err != nil {
		return err
	}

	for _, meeting := range meetings {
		if err := DeleteMeetingCascade(tx, meeting); err != nil {
			return err
		}
	}

	if err := tx.Where("team_id = ?", team.ID).Delete(&models.TeamMembership{}).Error; err != nil {
		return err
	}

	return tx.Delete(&team).Error
}

// DeleteUserCascade removes a user and everything hanging off them:
// invitations, notifications, goal timelines, created teams (with their
// meetings and invitations), memberships, goals, activities, then the user
// row itself. The user's own invitation and notification rows go first so
// the team cascades below do not re-notify a vanishing account.
func DeleteUserCascade(tx *gorm.DB, user models.User) error {
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.MeetingInvitation{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Notification{}).Error; err != nil {
		return err
	}

	var goalIDs []uint
	if err := tx.Model(&models.Goal{}).Where("user_id = ?", user.ID).Pluck("id", &goalIDs).Error; err != nil {
		return err
	}
	if len(goalIDs) > 0 {
		if err := tx.Where("goal_id IN ?", goalIDs).Delete(&models.Timeline{}).Error; err != nil {
			return err
		}
	}

	var createdTeams []models.Team
	if err := tx.Where("creator_id = ?", user.ID).Find(&createdTeams).Error; err != nil {
		return err
	}
	for _, team := range createdTeams {
		if err := DeleteTeamCascade(tx, team); err != nil {
			return err
		}
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.TeamMembership{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Goal{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Activity{}).Error; err != nil {
		return err
	}

	return tx.Delete(&user).Error
}
