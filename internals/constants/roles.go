package constants

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

var (
	AllRoles = []string{
		RoleStudent,
		RoleInstructor,
		RoleAdmin,
	}

	InstructorAndAbove = []string{
		RoleInstructor,
		RoleAdmin,
	}

	StudentOnly = []string{
		RoleStudent,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
