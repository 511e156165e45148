package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/common"
)

var errEmptyPassword = errors.New("password must not be empty")

// Register prompts for the profile fields and a password and creates the
// account. The new user is logged in on success.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	nickname, err := getSimpleText(a.reader, "Enter nickname", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	role, err := a.promptRole()
	if err != nil {
		return err
	}

	user := models.User{
		Name:         name,
		Nickname:     nickname,
		Email:        email,
		Role:         role,
		Documents:    []string{},
		Works:        []string{},
		SavedChatIDs: []string{},
	}

	switch role {
	case models.RoleSpecialist:
		org, err := getSimpleText(a.reader, "Enter organization", a.out)
		if err != nil {
			return err
		}
		spec, err := getSimpleText(a.reader, "Enter specialty", a.out)
		if err != nil {
			return err
		}
		user.Organization, user.Specialty = optional(org), optional(spec)
	case models.RoleStudent:
		uni, err := getSimpleText(a.reader, "Enter university", a.out)
		if err != nil {
			return err
		}
		user.University = optional(uni)
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		return errEmptyPassword
	}

	u, err := a.userService.Register(ctx, user, string(password))
	if err != nil {
		return err
	}
	a.user = u
	fmt.Fprintf(a.out, "Welcome, %s!\n", displayName(u))
	return nil
}

func (a *App) promptRole() (models.Role, error) {
	choices := make([]string, 0, len(models.Roles))
	for _, r := range models.Roles {
		if r != models.RoleAdmin {
			choices = append(choices, string(r))
		}
	}
	ans, err := getSimpleText(a.reader, "Enter role ("+strings.Join(choices, ", ")+")", a.out)
	if err != nil {
		return "", err
	}
	role, err := models.ParseRole(ans)
	if err != nil || role == models.RoleAdmin {
		return "", fmt.Errorf("role %q: %w", ans, common.ErrValidation)
	}
	return role, nil
}

// Login prompts for an email or nickname and a password. An empty password
// is refused here so the terminal never opens a session without one.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or nickname", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		return errEmptyPassword
	}

	u, err := a.userService.Login(ctx, identifier, string(password))
	if err != nil {
		a.logger.Info(ctx, "login unsuccessful")
		return err
	}
	a.user = u
	fmt.Fprintf(a.out, "Logged in as %s\n", displayName(u))
	return nil
}

// Logout clears the persisted session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.userService.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the session user's profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

// Profile edits the free-form profile fields. Empty answers keep the
// current value.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	updated := *u

	name, err := getSimpleText(a.reader, fmt.Sprintf("Full name [%s]", u.Name), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		updated.Name = name
	}

	org, err := getSimpleText(a.reader, fmt.Sprintf("Organization [%s]", deref(u.Organization)), a.out)
	if err != nil {
		return err
	}
	if org != "" {
		updated.Organization = &org
	}

	bio, err := getSimpleText(a.reader, fmt.Sprintf("Bio [%s]", deref(u.Bio)), a.out)
	if err != nil {
		return err
	}
	if bio != "" {
		updated.Bio = &bio
	}

	works, err := getSimpleText(a.reader, "Works, comma separated (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if works != "" {
		updated.Works = SplitList(works)
	}

	if err := a.userService.UpdateUser(ctx, updated); err != nil {
		return err
	}
	a.user = &updated
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}
