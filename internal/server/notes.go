package server

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Paintersrp/colecto/internal/bridge"
	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/store"
)

type saveRequest struct {
	Folder  string `json:"folder"`
	Content string `json:"content"`
}

type createRequest struct {
	Folder string `json:"folder"`
}

type renameRequest struct {
	Folder string `json:"folder"`
	Title  string `json:"title"`
}

type noteController struct {
	bridge    *bridge.Bridge
	folder    func() string
	anyFolder bool
}

func newNoteController(b *bridge.Bridge, folder func() string, anyFolder bool) *noteController {
	return &noteController{bridge: b, folder: folder, anyFolder: anyFolder}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Save)
	h.Delete(":id", c.Delete)
	h.Post(":id/rename", c.Rename)
}

// resolveFolder returns the configured folder. A request may name it
// explicitly; other folders are refused unless anyFolder is set.
func (c *noteController) resolveFolder(requested string) (string, error) {
	var current string
	if c.folder != nil {
		current = strings.TrimSpace(c.folder())
	}

	requested = strings.TrimSpace(requested)
	switch {
	case requested == "" && current == "":
		return "", fiber.NewError(fiber.StatusBadRequest, "no folder selected")
	case requested == "":
		return current, nil
	case c.anyFolder || (current != "" && filepath.Clean(requested) == filepath.Clean(current)):
		return requested, nil
	default:
		return "", fiber.NewError(fiber.StatusForbidden, "folder not allowed")
	}
}

// validID checks a path id. Save appends the extension itself, the other
// routes only touch existing .md files.
func validID(id string, requireExt bool) error {
	if requireExt && !note.HasNoteExt(id) {
		return fiber.NewError(fiber.StatusBadRequest, "not a note: "+id)
	}
	if err := note.ValidateName(note.TitleFromID(id)); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	folder, err := c.resolveFolder(ctx.Query("folder"))
	if err != nil {
		return err
	}

	return ctx.JSON(c.bridge.GetNotes(folder))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := validID(id, true); err != nil {
		return err
	}
	folder, err := c.resolveFolder(ctx.Query("folder"))
	if err != nil {
		return err
	}

	n, err := c.bridge.GetNote(folder, id)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, bridge.MsgNotFound)
	}
	if err != nil {
		return err
	}

	return ctx.JSON(n)
}

func (c *noteController) Save(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := validID(id, false); err != nil {
		return err
	}

	var req saveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	folder, err := c.resolveFolder(req.Folder)
	if err != nil {
		return err
	}

	res := c.bridge.SaveNote(folder, id, req.Content)
	return ctx.Status(resultStatus(res.Success, res.Error, fiber.StatusOK)).JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req createRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	folder, err := c.resolveFolder(req.Folder)
	if err != nil {
		return err
	}

	res := c.bridge.CreateNote(folder)
	return ctx.Status(resultStatus(res.Success, res.Error, fiber.StatusCreated)).JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := validID(id, true); err != nil {
		return err
	}
	folder, err := c.resolveFolder(ctx.Query("folder"))
	if err != nil {
		return err
	}

	res := c.bridge.DeleteNote(folder, id)
	return ctx.Status(resultStatus(res.Success, res.Error, fiber.StatusOK)).JSON(res)
}

func (c *noteController) Rename(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := validID(id, true); err != nil {
		return err
	}

	var req renameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	title := strings.TrimSpace(req.Title)
	if err := note.ValidateName(title); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	folder, err := c.resolveFolder(req.Folder)
	if err != nil {
		return err
	}

	res := c.bridge.RenameNote(folder, id, title)
	return ctx.Status(resultStatus(res.Success, res.Error, fiber.StatusOK)).JSON(res)
}

func resultStatus(success bool, msg string, ok int) int {
	switch {
	case success:
		return ok
	case msg == bridge.MsgExists:
		return fiber.StatusConflict
	case msg == bridge.MsgNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
