package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/responses"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	tasks, err := b.tasksRepository.List(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return web.NewJSONResponse(MarshalListToBridge(tasks))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id := web.Param(r, "id")

	task, err := b.tasksRepository.Get(ctx, id)
	if err != nil {
		return notFoundOr(errs.Internal, id, err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

// httpCreate answers 400 for any failure, store failures included.
func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateTaskInput
	if err := decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	create, err := MarshalCreateToRepository(input)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	task, err := b.tasksRepository.Create(ctx, create)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(task), http.StatusCreated)
}

// httpUpdateFields overwrites title and dueDate. Unknown ids and values that
// cannot be cast answer 500 on this route.
func (b *bridge) httpUpdateFields(ctx context.Context, r *http.Request) web.Encoder {
	id := web.Param(r, "id")

	var input UpdateFieldsInput
	if err := decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	title, due, err := MarshalUpdateFieldsToRepository(input)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	task, err := b.tasksRepository.UpdateFields(ctx, id, title, due)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpUpdateStatus(ctx context.Context, r *http.Request) web.Encoder {
	id := web.Param(r, "id")

	var input UpdateStatusInput
	if err := decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	completed, err := castBool("completed", input.Completed)
	if err != nil {
		b.log.ErrorContext(ctx, "update status", "task_id", id, "error", err)
		return errs.Newf(errs.Internal, "error updating task status")
	}

	task, err := b.tasksRepository.UpdateStatus(ctx, id, completed)
	if err != nil {
		if tasksrepo.IsNotFound(err) {
			return errs.Newf(errs.NotFound, "task %s not found", id)
		}
		return errs.Newf(errs.Internal, "error updating task status")
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpPatch(ctx context.Context, r *http.Request) web.Encoder {
	id := web.Param(r, "id")

	var input PatchTaskInput
	if err := decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	update, err := MarshalPatchToRepository(input)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	task, err := b.tasksRepository.Patch(ctx, id, update)
	if err != nil {
		return notFoundOr(errs.Internal, id, err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id := web.Param(r, "id")

	if err := b.tasksRepository.Delete(ctx, id); err != nil {
		return notFoundOr(errs.Internal, id, err)
	}

	return responses.NewMessage("Task deleted")
}

func (b *bridge) httpHealth(ctx context.Context, r *http.Request) web.Encoder {
	if err := b.tasksRepository.StatusCheck(ctx); err != nil {
		b.log.ErrorContext(ctx, "health check failed", "error", err)
		return responses.NewStatus(false)
	}
	return responses.NewStatus(true)
}

// decode reads the body into v. An empty body is treated as {}.
func decode(r *http.Request, v any) error {
	data, err := web.ReadBody(r)
	if err != nil {
		if !errors.Is(err, web.ErrEmptyBody) {
			return err
		}
		data = []byte("{}")
	}
	return web.DecodeBytes(data, v)
}

func notFoundOr(code errs.ErrCode, id string, err error) *errs.Error {
	if tasksrepo.IsNotFound(err) {
		return errs.Newf(errs.NotFound, "task %s not found", id)
	}
	return errs.New(code, err)
}
