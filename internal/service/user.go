package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/mail"
	"github.com/tazhibayda/idea-service/internal/queue"
	"github.com/tazhibayda/idea-service/internal/repo"
	"github.com/tazhibayda/idea-service/internal/security"
)

const codeLength = 6

type UserService struct {
	users    UserStore
	deps     DepartmentStore
	mailer   mail.Sender
	throttle Throttle
	pub      queue.Publisher
	exchange string

	JWTSecret      string
	AccessTTL      time.Duration
	DefaultPass    string
	CodeTTL        time.Duration
	CodeRequestGap time.Duration
	BaseURL        string

	Now func() time.Time
}

func NewUserService(users UserStore, deps DepartmentStore, mailer mail.Sender, throttle Throttle, pub queue.Publisher, exchange string) *UserService {
	return &UserService{users: users, deps: deps, mailer: mailer, throttle: throttle, pub: pub, exchange: exchange}
}

func (s *UserService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type SignupInput struct {
	FirstName  string
	LastName   string
	Email      string
	Role       domain.UserRole
	Department primitive.ObjectID
}

// Signup is admin-only account creation: the user starts INACTIVE with the
// default password and a one-time activation code mailed to them.
func (s *UserService) Signup(ctx context.Context, in SignupInput, actor primitive.ObjectID, reqID string) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, apperr.ErrUnknownData
	}
	if existing, err := s.users.FindUserByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.ErrUserExisted
	}
	if !in.Department.IsZero() {
		if in.Role == domain.RoleAdmin || in.Role == domain.RoleQAM {
			return nil, apperr.ErrDepartmentForQAMOrAdmin
		}
		dep, err := s.deps.FindDepartmentByID(ctx, in.Department)
		if err != nil {
			return nil, err
		}
		if dep == nil {
			return nil, apperr.ErrDepartmentNotExisted
		}
	}

	hash, err := security.HashPassword(s.DefaultPass)
	if err != nil {
		return nil, err
	}
	code := security.NewCode(codeLength)

	now := s.clock()
	u := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Status:       domain.UserInactive,
		Role:         in.Role,
		Department:   in.Department,
		Code:         code,
		CodeExpires:  now.Add(s.CodeTTL),
		CreatedAt:    now,
		UpdatedAt:    now,
		UpdatedBy:    actor,
	}
	if err := s.users.InsertUser(ctx, u); err != nil {
		if repo.IsDup(err) {
			return nil, apperr.ErrUserExisted
		}
		return nil, err
	}

	if s.pub != nil {
		// best effort, аккаунт уже создан
		_ = s.pub.Publish(ctx, s.exchange, queue.KeyUserRegistered, queue.UserRegistered{
			UserID: u.ID, Email: u.Email, Role: string(u.Role),
		}, reqID)
	}

	body := fmt.Sprintf(
		`Welcome, %s!<br>Your activation code is <b>%s</b>. It expires in %d hours.<br><a href="%s/activate">Activate your account</a>`,
		u.FullName(), code, int(s.CodeTTL.Hours()), s.BaseURL,
	)
	if err := s.mailer.Send(ctx, []string{u.Email}, "Activate your account", body); err != nil {
		return nil, apperr.ErrEmailNotSent
	}
	return u, nil
}

// Activate redeems the activation code and sets the user's own password.
func (s *UserService) Activate(ctx context.Context, email, code, newPassword string) (*domain.User, error) {
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotExist
	}
	switch u.Status {
	case domain.UserInactive:
	case domain.UserActive:
		return nil, apperr.ErrAccountActivated
	default:
		return nil, apperr.ErrAccountLockedOrDeleted
	}
	if u.Code != code {
		return nil, apperr.ErrCodeInvalid
	}
	if !u.CodeExpires.After(s.clock()) {
		return nil, apperr.ErrCodeExpired
	}

	if _, err := s.users.ConsumeActivationCode(ctx, u.ID, code, domain.UserActive); err != nil {
		if err == repo.ErrNotFound {
			// проиграли гонку за код
			return nil, apperr.ErrCodeExpired
		}
		return nil, err
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	return s.users.SetUserPassword(ctx, u.ID, hash, false, u.ID)
}

type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrWrongPassword
	}
	switch u.Status {
	case domain.UserActive:
	case domain.UserInactive:
		return nil, apperr.ErrAccountNotActivated
	default:
		return nil, apperr.ErrAccountLockedOrDeleted
	}
	if !security.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.ErrWrongPassword
	}
	token, err := security.MakeAccess(s.JWTSecret, u.ID.Hex(), u.Email, string(u.Role), s.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: *u}, nil
}

// RequestActivationCode issues a fresh code for a not-yet-activated
// account. Repeats inside the throttle window are rejected.
func (s *UserService) RequestActivationCode(ctx context.Context, email string) error {
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.ErrUserNotExist
	}
	if u.Status != domain.UserInactive {
		return apperr.ErrAccountNotInactive
	}
	return s.issueCode(ctx, u, "Your new activation code")
}

// RequestPasswordReset issues a reset code for an active account. The same
// code field serves both flows, so an outstanding activation code is
// simply overwritten.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.ErrUserNotExist
	}
	switch u.Status {
	case domain.UserActive:
	case domain.UserInactive:
		return apperr.ErrAccountNotActivated
	default:
		return apperr.ErrAccountLockedOrDeleted
	}
	return s.issueCode(ctx, u, "Your password reset code")
}

func (s *UserService) issueCode(ctx context.Context, u *domain.User, subject string) error {
	ok, err := s.throttle.AllowCodeRequest(ctx, u.ID.Hex(), s.CodeRequestGap)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrCodeRequestTooSoon
	}
	code := security.NewCode(codeLength)
	now := s.clock()
	if _, err := s.users.SetUserCode(ctx, u.ID, code, now.Add(s.CodeTTL), u.ID); err != nil {
		if err == repo.ErrNotFound {
			return apperr.ErrUserNotExist
		}
		return err
	}
	body := fmt.Sprintf("Hello, %s!<br>Your code is <b>%s</b>. It expires in %d hours.", u.FullName(), code, int(s.CodeTTL.Hours()))
	if err := s.mailer.Send(ctx, []string{u.Email}, subject, body); err != nil {
		return apperr.ErrEmailNotSent
	}
	return nil
}

// ResetPassword redeems a reset code. Status is left untouched.
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) (*domain.User, error) {
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotExist
	}
	if u.Code != code {
		return nil, apperr.ErrCodeInvalid
	}
	if !u.CodeExpires.After(s.clock()) {
		return nil, apperr.ErrCodeExpired
	}
	if _, err := s.users.ConsumeActivationCode(ctx, u.ID, code, ""); err != nil {
		if err == repo.ErrNotFound {
			return nil, apperr.ErrCodeExpired
		}
		return nil, err
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	return s.users.SetUserPassword(ctx, u.ID, hash, false, u.ID)
}

func (s *UserService) ChangePassword(ctx context.Context, actorID primitive.ObjectID, oldPassword, newPassword string) (*domain.User, error) {
	u, err := s.users.FindUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotExist
	}
	if !security.CheckPassword(u.PasswordHash, oldPassword) {
		return nil, apperr.ErrWrongPassword
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	return s.users.SetUserPassword(ctx, u.ID, hash, false, u.ID)
}

// Deactivate locks an account out; it is not a delete, the history keeps
// pointing at the user.
func (s *UserService) Deactivate(ctx context.Context, id, actor primitive.ObjectID) (*domain.User, error) {
	u, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotExist
	}
	if u.Status == domain.UserLocked || u.Status == domain.UserDeleted {
		return nil, apperr.ErrAccountLockedOrDeleted
	}
	updated, err := s.users.SetUserStatus(ctx, id, domain.UserLocked, actor)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrUserNotExist
	}
	return updated, err
}

type ProfileView struct {
	User       domain.User        `json:"user"`
	Department *domain.Department `json:"department"`
}

func (s *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*ProfileView, error) {
	u, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotExist
	}
	var dep *domain.Department
	if !u.Department.IsZero() {
		if dep, err = s.deps.FindDepartmentByID(ctx, u.Department); err != nil {
			return nil, err
		}
	}
	return &ProfileView{User: *u, Department: dep}, nil
}

// requireActive loads the user and rejects anything but an ACTIVE account.
func (s *UserService) requireActive(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotExist
	}
	switch u.Status {
	case domain.UserActive:
		return u, nil
	case domain.UserInactive:
		return nil, apperr.ErrAccountNotActivated
	default:
		return nil, apperr.ErrAccountLockedOrDeleted
	}
}

func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, p domain.ProfileUpdate) (*domain.User, error) {
	if _, err := s.requireActive(ctx, id); err != nil {
		return nil, err
	}
	u, err := s.users.UpdateUserProfile(ctx, id, p)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrUserNotExist
	}
	return u, err
}

func (s *UserService) SetAvatar(ctx context.Context, id primitive.ObjectID, avatar string) (*domain.User, error) {
	if _, err := s.requireActive(ctx, id); err != nil {
		return nil, err
	}
	u, err := s.users.SetUserAvatar(ctx, id, avatar, id)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrUserNotExist
	}
	return u, err
}

type UserListItem struct {
	domain.User
	Department *domain.Department `json:"department"`
}

type UserList struct {
	Users     []UserListItem `json:"users"`
	Total     int64          `json:"total"`
	Page      int            `json:"page"`
	TotalPage int            `json:"totalPage"`
}

func (s *UserService) ListUsers(ctx context.Context, p domain.ListParams) (*UserList, error) {
	users, total, err := s.users.ListUsers(ctx, p)
	if err != nil {
		return nil, err
	}
	deps := map[primitive.ObjectID]*domain.Department{}
	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		var dep *domain.Department
		if !u.Department.IsZero() {
			var ok bool
			if dep, ok = deps[u.Department]; !ok {
				if dep, err = s.deps.FindDepartmentByID(ctx, u.Department); err != nil {
					return nil, err
				}
				deps[u.Department] = dep
			}
		}
		items = append(items, UserListItem{User: u, Department: dep})
	}
	return &UserList{Users: items, Total: total, Page: p.Page + 1, TotalPage: domain.TotalPages(total, p.Limit)}, nil
}

// ChangeDepartment moves a staff member or coordinator; admins and QA
// managers do not belong to departments.
func (s *UserService) ChangeDepartment(ctx context.Context, userID, depID, actor primitive.ObjectID) (*domain.User, error) {
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotExist
	}
	if u.Role == domain.RoleAdmin || u.Role == domain.RoleQAM {
		return nil, apperr.ErrDepartmentForQAMOrAdmin
	}
	dep, err := s.deps.FindDepartmentByID(ctx, depID)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, apperr.ErrDepartmentNotExisted
	}
	if u.Department == depID {
		return nil, apperr.ErrAlreadyInDepartment
	}
	updated, err := s.users.SetUserDepartment(ctx, userID, depID, actor)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrUserNotExist
	}
	return updated, err
}
