package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-web/internal/middleware"
	"movie-web/internal/models"
	"movie-web/internal/movieapi"
	"movie-web/internal/service"
)

// person is the common view of an actor or director.
type person struct {
	ID          int
	Name        string
	Gender      *string
	BirthDate   *string
	Nationality *string
	PhotoURL    *string
}

func (p person) Photo() string {
	if p.PhotoURL == nil {
		return ""
	}
	return *p.PhotoURL
}

func (p person) draft() service.EntityForm[models.PersonInput] {
	return service.EntityForm[models.PersonInput]{ID: p.ID, Draft: models.PersonInput{
		Name:        p.Name,
		Gender:      p.Gender,
		BirthDate:   p.BirthDate,
		Nationality: p.Nationality,
	}}
}

func fromActor(a models.Actor) person {
	return person{a.ActorID, a.Name, a.Gender, a.BirthDate, a.Nationality, a.PhotoURL}
}

func fromDirector(d models.Director) person {
	return person{d.DirectorID, d.Name, d.Gender, d.BirthDate, d.Nationality, d.PhotoURL}
}

// people binds the shared admin pages to one collection.
type people struct {
	Noun   string
	Plural string
	Base   string

	list   func(ctx context.Context) ([]person, error)
	get    func(ctx context.Context, id int) (*person, error)
	save   func(ctx context.Context, token string, form service.EntityForm[models.PersonInput], photo *movieapi.Upload) (*person, error)
	remove func(ctx context.Context, token string, id int) error
	photo  func(ctx context.Context, token string, id int, file movieapi.Upload) error
}

func mapPeople[T any](items []T, err error, conv func(T) person) ([]person, error) {
	if err != nil {
		return nil, err
	}
	out := make([]person, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return out, nil
}

func getPerson[T any](item *T, err error, conv func(T) person) (*person, error) {
	if err != nil {
		return nil, err
	}
	p := conv(*item)
	return &p, nil
}

func (h *Handler) actors() *people {
	return &people{
		Noun:   "actor",
		Plural: "Actors",
		Base:   "/admin/actors",
		list: func(ctx context.Context) ([]person, error) {
			items, err := h.api.ListActors(ctx)
			return mapPeople(items, err, fromActor)
		},
		get: func(ctx context.Context, id int) (*person, error) {
			a, err := h.api.GetActor(ctx, id)
			return getPerson(a, err, fromActor)
		},
		save: func(ctx context.Context, token string, form service.EntityForm[models.PersonInput], photo *movieapi.Upload) (*person, error) {
			a, err := h.catalog.SaveActor(ctx, token, form, photo)
			if a == nil {
				return nil, err
			}
			p := fromActor(*a)
			return &p, err
		},
		remove: h.catalog.DeleteActor,
		photo: func(ctx context.Context, token string, id int, file movieapi.Upload) error {
			_, err := service.Upload(ctx, token, id, file, h.api.UploadActorPhoto)
			return err
		},
	}
}

func (h *Handler) directors() *people {
	return &people{
		Noun:   "director",
		Plural: "Directors",
		Base:   "/admin/directors",
		list: func(ctx context.Context) ([]person, error) {
			items, err := h.api.ListDirectors(ctx)
			return mapPeople(items, err, fromDirector)
		},
		get: func(ctx context.Context, id int) (*person, error) {
			d, err := h.api.GetDirector(ctx, id)
			return getPerson(d, err, fromDirector)
		},
		save: func(ctx context.Context, token string, form service.EntityForm[models.PersonInput], photo *movieapi.Upload) (*person, error) {
			d, err := h.catalog.SaveDirector(ctx, token, form, photo)
			if d == nil {
				return nil, err
			}
			p := fromDirector(*d)
			return &p, err
		},
		remove: h.catalog.DeleteDirector,
		photo: func(ctx context.Context, token string, id int, file movieapi.Upload) error {
			_, err := service.Upload(ctx, token, id, file, h.api.UploadDirectorPhoto)
			return err
		},
	}
}

type peopleData struct {
	People *people
	Items  []person
}

type personFormData struct {
	People *people
	Form   service.EntityForm[models.PersonInput]
	Photo  string
}

func (h *Handler) renderPersonForm(c fiber.Ctx, status int, data personFormData, errMsg string) error {
	title := "New " + data.People.Noun
	if data.Form.Editing() {
		title = "Edit " + data.People.Noun
	}
	v := h.view(c, title, data)
	if errMsg != "" {
		v.Error = errMsg
	}
	return h.views.Render(c, status, "person_form", v)
}

func (p *people) listPage(h *Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		v := h.view(c, "Manage "+strings.ToLower(p.Plural), nil)
		items, err := p.list(c.Context())
		if err != nil {
			v.Error = fmt.Sprintf("Failed to load %s. Please try again later.", strings.ToLower(p.Plural))
		}
		v.Data = peopleData{People: p, Items: items}
		return h.views.Render(c, fiber.StatusOK, "admin_people", v)
	}
}

func (p *people) newPage(h *Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		return h.renderPersonForm(c, fiber.StatusOK, personFormData{People: p}, "")
	}
}

func (p *people) editPage(h *Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		item, err := p.get(c.Context(), id)
		if err != nil {
			if movieapi.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, strings.ToUpper(p.Noun[:1])+p.Noun[1:]+" not found.")
			}
			setFlash(c, flashError, userMessage(err))
			return redirect(c, p.Base)
		}
		return h.renderPersonForm(c, fiber.StatusOK, personFormData{People: p, Form: item.draft(), Photo: item.Photo()}, "")
	}
}

func (p *people) savePage(h *Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		form := service.EntityForm[models.PersonInput]{Draft: models.PersonInput{
			Name:        strings.TrimSpace(c.FormValue("name")),
			Gender:      optString(c.FormValue("gender")),
			BirthDate:   optString(c.FormValue("birth_date")),
			Nationality: optString(c.FormValue("nationality")),
		}}
		if c.Params("id") != "" {
			id, err := paramID(c)
			if err != nil {
				return err
			}
			form.ID = id
		}

		photo, closer, err := formUpload(c, "photo")
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}

		saved, err := p.save(c.Context(), middleware.AdminToken(c), form, photo)
		if err != nil {
			if saved != nil {
				setFlash(c, flashError, userMessage(err))
				return redirect(c, fmt.Sprintf("%s/%d/edit", p.Base, saved.ID))
			}
			return h.renderPersonForm(c, formStatus(err), personFormData{People: p, Form: form}, userMessage(err))
		}

		setFlash(c, flashNotice, fmt.Sprintf("Saved %s.", saved.Name))
		return redirect(c, p.Base)
	}
}

func (p *people) deletePage(h *Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		if err := p.remove(c.Context(), middleware.AdminToken(c), id); err != nil {
			setFlash(c, flashError, userMessage(err))
			return redirect(c, p.Base)
		}
		setFlash(c, flashNotice, strings.ToUpper(p.Noun[:1])+p.Noun[1:]+" deleted.")
		return redirect(c, p.Base)
	}
}

func (p *people) photoPage(h *Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		back := fmt.Sprintf("%s/%d/edit", p.Base, id)

		file, closer, err := formUpload(c, "photo")
		if err != nil {
			return err
		}
		if file == nil {
			setFlash(c, flashError, "Choose an image to upload.")
			return redirect(c, back)
		}
		defer closer.Close()

		if err := p.photo(c.Context(), middleware.AdminToken(c), id, *file); err != nil {
			setFlash(c, flashError, userMessage(err))
			return redirect(c, back)
		}
		setFlash(c, flashNotice, "Photo updated.")
		return redirect(c, back)
	}
}

func (p *people) register(r fiber.Router, h *Handler) {
	base := strings.TrimPrefix(p.Base, "/admin")
	r.Get(base, p.listPage(h))
	r.Get(base+"/new", p.newPage(h))
	r.Post(base, p.savePage(h))
	r.Get(base+"/:id/edit", p.editPage(h))
	r.Post(base+"/:id", p.savePage(h))
	r.Post(base+"/:id/delete", p.deletePage(h))
	r.Post(base+"/:id/photo", p.photoPage(h))
}
