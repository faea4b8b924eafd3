package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-web/internal/middleware"
	"movie-web/internal/models"
	"movie-web/internal/service"
)

// Profile renders the visitor's account page.
func (h *Handler) Profile(c fiber.Ctx) error {
	return h.views.Render(c, fiber.StatusOK, "profile", h.view(c, "Profile", nil))
}

// UpdateProfile sends only the fields the visitor changed. The redirected page
// resolves the user again, so it shows the saved values.
func (h *Handler) UpdateProfile(c fiber.Ctx) error {
	ctrl := middleware.CurrentSession(c)
	current := ctrl.User()

	upd := service.ProfileChanges(current, c.FormValue("username"), c.FormValue("email"))
	if upd.Empty() {
		setFlash(c, flashNotice, "Nothing to update.")
		return redirect(c, "/profile")
	}

	if _, err := h.profile.UpdateProfile(c.Context(), ctrl.Token(), current, upd); err != nil {
		setFlash(c, flashError, userMessage(err))
		return redirect(c, "/profile")
	}
	setFlash(c, flashNotice, "Profile updated.")
	return redirect(c, "/profile")
}

func (h *Handler) ChangePassword(c fiber.Ctx) error {
	ctrl := middleware.CurrentSession(c)
	in := models.PasswordChange{
		CurrentPassword: c.FormValue("current_password"),
		NewPassword:     c.FormValue("new_password"),
	}
	if in.NewPassword != c.FormValue("new_password_confirm") {
		setFlash(c, flashError, "new passwords do not match")
		return redirect(c, "/profile")
	}

	if err := h.profile.ChangePassword(c.Context(), ctrl.Token(), in); err != nil {
		setFlash(c, flashError, userMessage(err))
		return redirect(c, "/profile")
	}
	setFlash(c, flashNotice, "Password changed.")
	return redirect(c, "/profile")
}

func (h *Handler) UploadAvatar(c fiber.Ctx) error {
	ctrl := middleware.CurrentSession(c)

	file, closer, err := formUpload(c, "avatar")
	if err != nil {
		return err
	}
	if file == nil {
		setFlash(c, flashError, "Choose an image to upload.")
		return redirect(c, "/profile")
	}
	defer closer.Close()

	if _, err := h.profile.UploadAvatar(c.Context(), ctrl.Token(), *file); err != nil {
		setFlash(c, flashError, userMessage(err))
		return redirect(c, "/profile")
	}
	setFlash(c, flashNotice, "Avatar updated.")
	return redirect(c, "/profile")
}
