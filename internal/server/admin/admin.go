// Package admin — HTML-админка пользователей.
//
// Доступна только активным staff-пользователям. Сессия хранится в cookie
// с подписанным JWT (см. crypto.NewSessionToken).
package admin

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/middleware"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/service"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	loginPath = "/admin/login/"
	usersPath = "/admin/users/"
)

// Auth — то, что админке нужно от сервиса аутентификации.
type Auth interface {
	LoginStaff(ctx context.Context, email, password string) (string, error)
	VerifySession(ctx context.Context, session string) (models.User, error)
}

// Users — управление пользователями.
type Users interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	CreateByAdmin(ctx context.Context, in service.AdminUserInput) (models.User, error)
	UpdateByAdmin(ctx context.Context, id int64, in service.AdminUserInput) (models.User, error)
}

// Options — настройки cookie сессии.
type Options struct {
	CookieName   string
	SecureCookie bool
	SessionTTL   time.Duration
}

// Handler обслуживает страницы админки.
type Handler struct {
	auth  Auth
	users Users
	log   *logger.HTTPLogger
	opts  Options
	pages map[string]*template.Template
}

// NewHandler разбирает шаблоны и создаёт Handler.
func NewHandler(auth Auth, users Users, log *logger.HTTPLogger, opts Options) (*Handler, error) {
	if opts.CookieName == "" {
		opts.CookieName = "admin_session"
	}
	if log == nil {
		log = logger.NewNop()
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"login", "user_list", "user_form"} {
		t, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}

	return &Handler{auth: auth, users: users, log: log, opts: opts, pages: pages}, nil
}

// Routes возвращает роутер админки. Монтируется на /admin.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminSession(h.auth, h.opts.CookieName, loginPath))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, usersPath, http.StatusFound)
		})
		r.Post("/logout", h.Logout)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.UserList)
			r.Get("/add", h.UserAddPage)
			r.Post("/add", h.UserAdd)
			r.Get("/{id}/change", h.UserChangePage)
			r.Post("/{id}/change", h.UserChange)
		})
	})

	return r
}

type page struct {
	Staff *models.User
}

type loginPage struct {
	page
	Email  string
	Next   string
	Errors []string
}

type listPage struct {
	page
	Users []models.User
}

type formPage struct {
	page
	IsAdd      bool
	Form       service.AdminUserInput
	Errors     map[string][]string
	LastLogin  *time.Time
	DateJoined time.Time
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages[name].ExecuteTemplate(w, "base", data); err != nil {
		h.log.Logger.Sugar().Errorw("render admin page failed", "page", name, "error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, serr.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	h.log.Logger.Sugar().Errorw(op+" failed", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func staffPage(r *http.Request) page {
	if u, ok := middleware.StaffFromContext(r.Context()); ok {
		return page{Staff: &u}
	}
	return page{}
}

// safeNext пропускает только локальные пути админки.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return usersPath
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login", loginPage{Next: r.URL.Query().Get("next")})
}

// Login проверяет учётные данные и ставит cookie сессии.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")
	next := r.PostForm.Get("next")

	session, err := h.auth.LoginStaff(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		if !isLoginError(err) {
			h.fail(w, "admin login", err)
			return
		}
		h.render(w, http.StatusOK, "login", loginPage{
			Email:  email,
			Next:   next,
			Errors: []string{"Please enter the correct email and password for a staff account. Note that both fields may be case-sensitive."},
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    session,
		Path:     "/admin",
		MaxAge:   int(h.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

func isLoginError(err error) bool {
	return errors.Is(err, serr.ErrInvalidInput) ||
		errors.Is(err, serr.ErrInvalidCredentials) ||
		errors.Is(err, serr.ErrForbidden)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, loginPath, http.StatusFound)
}

// UserList — список пользователей: email, имя, staff.
func (h *Handler) UserList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, "admin list users", err)
		return
	}
	h.render(w, http.StatusOK, "user_list", listPage{page: staffPage(r), Users: users})
}

func (h *Handler) UserAddPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "user_form", formPage{
		page:  staffPage(r),
		IsAdd: true,
		Form:  service.AdminUserInput{IsActive: true},
	})
}

func (h *Handler) UserAdd(w http.ResponseWriter, r *http.Request) {
	in, ok := parseUserForm(w, r)
	if !ok {
		return
	}

	u, err := h.users.CreateByAdmin(r.Context(), in)
	if err != nil {
		var verr *serr.ValidationError
		if errors.As(err, &verr) {
			in.Password, in.Password2 = "", ""
			h.render(w, http.StatusOK, "user_form", formPage{
				page: staffPage(r), IsAdd: true, Form: in, Errors: verr.Fields,
			})
			return
		}
		h.fail(w, "admin add user", err)
		return
	}

	http.Redirect(w, r, "/admin/users/"+strconv.FormatInt(u.ID, 10)+"/change/", http.StatusFound)
}

func (h *Handler) UserChangePage(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "admin get user", err)
		return
	}

	h.render(w, http.StatusOK, "user_form", changePage(r, u, service.AdminUserInput{
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}, nil))
}

func (h *Handler) UserChange(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	in, ok := parseUserForm(w, r)
	if !ok {
		return
	}

	u, err := h.users.UpdateByAdmin(r.Context(), id, in)
	if err != nil {
		var verr *serr.ValidationError
		if errors.As(err, &verr) {
			current, gerr := h.users.Get(r.Context(), id)
			if gerr != nil {
				h.fail(w, "admin get user", gerr)
				return
			}
			in.Password, in.Password2 = "", ""
			h.render(w, http.StatusOK, "user_form", changePage(r, current, in, verr.Fields))
			return
		}
		h.fail(w, "admin change user", err)
		return
	}

	http.Redirect(w, r, usersPath+"?"+url.Values{"changed": {strconv.FormatInt(u.ID, 10)}}.Encode(), http.StatusFound)
}

func changePage(r *http.Request, u models.User, in service.AdminUserInput, errs map[string][]string) formPage {
	return formPage{
		page:       staffPage(r),
		Form:       in,
		Errors:     errs,
		LastLogin:  u.LastLogin,
		DateJoined: u.DateJoined,
	}
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func parseUserForm(w http.ResponseWriter, r *http.Request) (service.AdminUserInput, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return service.AdminUserInput{}, false
	}
	f := r.PostForm
	return service.AdminUserInput{
		Email:       f.Get("email"),
		Password:    f.Get("password"),
		Password2:   f.Get("password2"),
		Name:        f.Get("name"),
		IsActive:    f.Get("is_active") != "",
		IsStaff:     f.Get("is_staff") != "",
		IsSuperuser: f.Get("is_superuser") != "",
	}, true
}
