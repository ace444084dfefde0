package services

import (
	"errors"

	"github.com/audithub/audithub/internal/authz"
	"github.com/audithub/audithub/internal/models"
	"github.com/audithub/audithub/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNotMember         = errors.New("not a member of this organization")
	ErrLastAdministrator = errors.New("organization must keep at least one administrator")
)

type OrganizationService struct {
	db *gorm.DB
}

func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{db: db}
}

type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// Create creates an organization and makes the creator its administrator.
// The new organization becomes the creator's selected one, and their
// default if they had none.
func (s *OrganizationService) Create(userID uint, req *CreateOrganizationRequest) (*models.Organization, error) {
	org := &models.Organization{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.OrganizationMember{}).
			Where("user_id = ?", userID).
			Count(&existing).Error; err != nil {
			return err
		}

		member := &models.OrganizationMember{
			UserID:         userID,
			OrganizationID: org.ID,
			Role:           string(authz.RoleAdministrator),
			IsDefault:      existing == 0,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		return selectOrganization(tx, userID, org)
	})
	if err != nil {
		return nil, err
	}

	return org, nil
}

type MemberOrganization struct {
	models.Organization
	Role      string `json:"role"`
	IsDefault bool   `json:"is_default"`
	Selected  bool   `json:"selected"`
}

// ListForUser returns the organizations the user belongs to, with their
// role and whether each is currently selected.
func (s *OrganizationService) ListForUser(userID uint) ([]MemberOrganization, error) {
	var memberships []models.OrganizationMember
	if err := s.db.Preload("Organization").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	selected, hasSelected := s.SelectedOrganization(userID)

	result := make([]MemberOrganization, 0, len(memberships))
	for _, m := range memberships {
		if m.Organization == nil {
			continue
		}
		result = append(result, MemberOrganization{
			Organization: *m.Organization,
			Role:         m.Role,
			IsDefault:    m.IsDefault,
			Selected:     hasSelected && m.OrganizationID == selected,
		})
	}
	return result, nil
}

// Switch changes the user's selected organization. Switching to the
// already-selected organization is a no-op. Non-members get ErrNotMember;
// the HTTP layer reports it as not found.
func (s *OrganizationService) Switch(userID, orgID uint) error {
	var member models.OrganizationMember
	err := s.db.Preload("Organization").
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotMember
		}
		return err
	}

	return selectOrganization(s.db, userID, member.Organization)
}

// EnsureSession makes sure the user has a session row, selecting their
// default organization when none is selected yet. Users without any
// membership get a session with no selection.
func (s *OrganizationService) EnsureSession(userID uint) error {
	var session models.UserSession
	err := s.db.Where("user_id = ?", userID).First(&session).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil && session.CurrentOrganizationID != nil {
		return nil
	}

	var member models.OrganizationMember
	memberErr := s.db.Preload("Organization").
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		First(&member).Error
	if memberErr != nil {
		if errors.Is(memberErr, gorm.ErrRecordNotFound) {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return s.db.Create(&models.UserSession{UserID: userID}).Error
			}
			return nil
		}
		return memberErr
	}

	return selectOrganization(s.db, userID, member.Organization)
}

// SelectedOrganization implements the middleware OrgSelector.
func (s *OrganizationService) SelectedOrganization(userID uint) (uint, bool) {
	var session models.UserSession
	if err := s.db.Where("user_id = ?", userID).First(&session).Error; err != nil {
		return 0, false
	}
	if session.CurrentOrganizationID == nil {
		return 0, false
	}
	return *session.CurrentOrganizationID, true
}

// RoleOf implements the authorization MembershipResolver.
func (s *OrganizationService) RoleOf(userID, organizationID uint) (authz.Role, bool) {
	var member models.OrganizationMember
	err := s.db.Where("user_id = ? AND organization_id = ?", userID, organizationID).
		First(&member).Error
	if err != nil {
		return "", false
	}

	role := authz.Role(member.Role)
	if !role.Valid() {
		return "", false
	}
	return role, true
}

func selectOrganization(tx *gorm.DB, userID uint, org *models.Organization) error {
	if org == nil {
		return errors.New("organization not loaded")
	}

	var session models.UserSession
	err := tx.Where("user_id = ?", userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.UserSession{
			UserID:                  userID,
			CurrentOrganizationID:   &org.ID,
			CurrentOrganizationName: org.Name,
		}).Error
	}
	if err != nil {
		return err
	}

	if session.CurrentOrganizationID != nil && *session.CurrentOrganizationID == org.ID {
		return nil
	}

	session.CurrentOrganizationID = &org.ID
	session.CurrentOrganizationName = org.Name
	return tx.Save(&session).Error
}

// --- membership management ---

type MemberInfo struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	Role      string `json:"role"`
	IsDefault bool   `json:"is_default"`
}

func (s *OrganizationService) ListMembers(orgID uint) ([]MemberInfo, error) {
	var memberships []models.OrganizationMember
	if err := s.db.Preload("User").
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	members := make([]MemberInfo, 0, len(memberships))
	for _, m := range memberships {
		info := MemberInfo{
			ID:        m.ID,
			UserID:    m.UserID,
			Role:      m.Role,
			IsDefault: m.IsDefault,
		}
		if m.User != nil {
			info.Username = m.User.Username
			info.Nickname = m.User.Nickname
		}
		members = append(members, info)
	}
	return members, nil
}

type AddMemberRequest struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (s *OrganizationService) AddMember(orgID uint, req *AddMemberRequest) (*models.OrganizationMember, error) {
	if !authz.Role(req.Role).Valid() {
		return nil, errors.New("invalid role")
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.OrganizationMember{}).
		Where("user_id = ?", user.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	member := &models.OrganizationMember{
		UserID:         user.ID,
		OrganizationID: orgID,
		Role:           req.Role,
		IsDefault:      count == 0,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (s *OrganizationService) UpdateMemberRole(orgID, memberID uint, role string) error {
	if !authz.Role(role).Valid() {
		return errors.New("invalid role")
	}

	var member models.OrganizationMember
	if err := s.db.Where("id = ? AND organization_id = ?", memberID, orgID).
		First(&member).Error; err != nil {
		return err
	}

	if member.Role == string(authz.RoleAdministrator) && role != string(authz.RoleAdministrator) {
		if err := s.ensureAnotherAdministrator(orgID, member.ID); err != nil {
			return err
		}
	}

	return s.db.Model(&member).Update("role", role).Error
}

func (s *OrganizationService) RemoveMember(orgID, memberID uint) error {
	var member models.OrganizationMember
	if err := s.db.Where("id = ? AND organization_id = ?", memberID, orgID).
		First(&member).Error; err != nil {
		return err
	}

	if member.Role == string(authz.RoleAdministrator) {
		if err := s.ensureAnotherAdministrator(orgID, member.ID); err != nil {
			return err
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&member).Error; err != nil {
			return err
		}

		// Deselect the organization for the removed user if needed
		var session models.UserSession
		err := tx.Where("user_id = ?", member.UserID).First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if session.CurrentOrganizationID != nil && *session.CurrentOrganizationID == orgID {
			session.CurrentOrganizationID = nil
			session.CurrentOrganizationName = ""
			return tx.Save(&session).Error
		}
		return nil
	})
}

func (s *OrganizationService) ensureAnotherAdministrator(orgID, excludeMemberID uint) error {
	var admins int64
	if err := s.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND role = ? AND id <> ?",
			orgID, string(authz.RoleAdministrator), excludeMemberID).
		Count(&admins).Error; err != nil {
		return err
	}
	if admins == 0 {
		return ErrLastAdministrator
	}
	return nil
}
