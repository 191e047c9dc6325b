// Package api exposes the scheduler over HTTP: a JSON control surface
// for the process lifecycle and configuration, and a proc-file style
// text endpoint mirroring the command interface.
package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/viant/quantor/service/engine"
	"github.com/viant/quantor/service/procfs"
)

// Handler wires HTTP routes to the scheduling engine.
type Handler struct {
	engine *engine.Service
	procfs *procfs.Service
}

// NewHandler creates an API handler over the supplied engine.
func NewHandler(core *engine.Service) *Handler {
	return &Handler{
		engine: core,
		procfs: procfs.New(core),
	}
}

// Register attaches all routes to the app.
func (h *Handler) Register(app *fiber.App) {
	v1 := app.Group("/api/v1")
	v1.Post("/processes", h.CreateProcess)
	v1.Get("/processes", h.ListProcesses)
	v1.Get("/processes/:pid", h.GetProcess)
	v1.Delete("/processes/:pid", h.TerminateProcess)
	v1.Post("/processes/:pid/block", h.BlockProcess)
	v1.Post("/processes/:pid/unblock", h.UnblockProcess)
	v1.Post("/processes/:pid/wait", h.WaitProcess)
	v1.Get("/stats", h.Stats)
	v1.Get("/config", h.GetConfig)
	v1.Put("/config", h.UpdateConfig)
	v1.Post("/scheduler/start", h.StartScheduler)
	v1.Post("/scheduler/pause", h.PauseScheduler)
	v1.Post("/scheduler/stop", h.StopScheduler)

	app.Get("/proc/sched_stats", h.ReadProcFile)
	app.Post("/proc/sched_stats", h.WriteProcFile)
}

type createProcessRequest struct {
	Name        string `json:"name"`
	Priority    int    `json:"priority"`
	BurstTimeMs int    `json:"burstTimeMs"`
}

type waitRequest struct {
	DurationMs int `json:"durationMs"`
}

type configRequest struct {
	TimeQuantumMs  *int `json:"timeQuantumMs"`
	AgingFactorSec *int `json:"agingFactorSec"`
}

// CreateProcess admits a new process.
func (h *Handler) CreateProcess(ctx *fiber.Ctx) error {
	request := &createProcessRequest{}
	if err := ctx.BodyParser(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}
	created, err := h.engine.CreateProcess(ctx.UserContext(), request.Name, request.Priority, request.BurstTimeMs)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

// ListProcesses returns the current process table, optionally filtered
// by ?state=READY,RUNNING.
func (h *Handler) ListProcesses(ctx *fiber.Ctx) error {
	var states []string
	if raw := ctx.Query("state"); raw != "" {
		for _, state := range strings.Split(raw, ",") {
			states = append(states, strings.ToUpper(strings.TrimSpace(state)))
		}
	}
	processes, err := h.engine.Processes(ctx.UserContext(), states...)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(processes)
}

// GetProcess returns a single process record.
func (h *Handler) GetProcess(ctx *fiber.Ctx) error {
	targetPID, err := ctx.ParamsInt("pid")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid pid"})
	}
	p, err := h.engine.Process(ctx.UserContext(), targetPID)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(p)
}

// TerminateProcess terminates a process; unknown pids are silently
// accepted to keep the operation idempotent.
func (h *Handler) TerminateProcess(ctx *fiber.Ctx) error {
	targetPID, err := ctx.ParamsInt("pid")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid pid"})
	}
	h.engine.Terminate(ctx.UserContext(), targetPID)
	return ctx.SendStatus(fiber.StatusNoContent)
}

// BlockProcess suspends the running process until explicitly unblocked.
func (h *Handler) BlockProcess(ctx *fiber.Ctx) error {
	targetPID, err := ctx.ParamsInt("pid")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid pid"})
	}
	h.engine.Block(ctx.UserContext(), targetPID)
	return ctx.SendStatus(fiber.StatusNoContent)
}

// UnblockProcess releases a waiting process back to the ready queue.
func (h *Handler) UnblockProcess(ctx *fiber.Ctx) error {
	targetPID, err := ctx.ParamsInt("pid")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid pid"})
	}
	h.engine.Unblock(ctx.UserContext(), targetPID)
	return ctx.SendStatus(fiber.StatusNoContent)
}

// WaitProcess puts a process to sleep for a fixed duration.
func (h *Handler) WaitProcess(ctx *fiber.Ctx) error {
	targetPID, err := ctx.ParamsInt("pid")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid pid"})
	}
	request := &waitRequest{}
	if err = ctx.BodyParser(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}
	if err = h.engine.WaitFor(ctx.UserContext(), targetPID, request.DurationMs); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, engine.ErrUnknownPID) {
			status = fiber.StatusNotFound
		}
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Stats returns the full snapshot: process table, aggregates and
// configuration.
func (h *Handler) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(h.engine.Snapshot(ctx.UserContext()))
}

// GetConfig returns the current scheduler configuration.
func (h *Handler) GetConfig(ctx *fiber.Ctx) error {
	return ctx.JSON(h.engine.Config())
}

// UpdateConfig applies the supplied scheduling knobs; omitted fields are
// left unchanged.
func (h *Handler) UpdateConfig(ctx *fiber.Ctx) error {
	request := &configRequest{}
	if err := ctx.BodyParser(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}
	if request.TimeQuantumMs != nil {
		if err := h.engine.SetTimeQuantum(*request.TimeQuantumMs); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if request.AgingFactorSec != nil {
		if err := h.engine.SetAgingFactor(*request.AgingFactorSec); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return ctx.JSON(h.engine.Config())
}

// StartScheduler launches or resumes the scheduling loop. The loop
// outlives the request, so it runs against the background context
// rather than the request's.
func (h *Handler) StartScheduler(ctx *fiber.Ctx) error {
	if err := h.engine.Start(context.Background()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// PauseScheduler freezes loop progress.
func (h *Handler) PauseScheduler(ctx *fiber.Ctx) error {
	h.engine.Pause()
	return ctx.SendStatus(fiber.StatusNoContent)
}

// StopScheduler stops the scheduling loop.
func (h *Handler) StopScheduler(ctx *fiber.Ctx) error {
	h.engine.Stop()
	return ctx.SendStatus(fiber.StatusNoContent)
}

// ReadProcFile returns the text status report.
func (h *Handler) ReadProcFile(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.SendString(h.procfs.Read(ctx.UserContext()))
}

// WriteProcFile executes one command line from the request body.
func (h *Handler) WriteProcFile(ctx *fiber.Ctx) error {
	if err := h.procfs.Write(ctx.UserContext(), string(ctx.Body())); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
