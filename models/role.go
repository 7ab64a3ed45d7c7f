package models

// Role is a platform-wide permission label on a user account.
type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleJudgePreliminary Role = "JUDGE_PRELIMINARY"
	RoleJudgeFinal       Role = "JUDGE_FINAL"
	RoleStaff            Role = "STAFF"
	RoleMentor           Role = "MENTOR"
	RoleTeamLeader       Role = "TEAM_LEADER"
	RoleTeamMember       Role = "TEAM_MEMBER"
	RoleGuest            Role = "GUEST"
)

var allRoles = []Role{
	RoleAdmin, RoleJudgePreliminary, RoleJudgeFinal, RoleStaff,
	RoleMentor, RoleTeamLeader, RoleTeamMember, RoleGuest,
}

func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}
