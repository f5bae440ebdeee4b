package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

func (a *App) List(ctx context.Context) error {
	tasks, err := a.client.ListTasks(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks yet")
		return nil
	}

	for _, t := range tasks {
		fmt.Fprintf(a.out, "%s  %s\n", t.ID, t.Title)
		if t.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", t.Description)
		}
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}

	description, err := GetSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	task, err := a.client.CreateTask(ctx, title, description)
	if err != nil {
		a.reportError(err)
		return err
	}

	fmt.Fprintf(a.out, "Created %s\n", task.ID)
	return nil
}

func (a *App) Update(ctx context.Context) error {

	id, err := a.promptTaskID("Enter task id to update")
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, "New title", a.out)
	if err != nil {
		return err
	}

	description, err := GetSimpleText(a.reader, "New description", a.out)
	if err != nil {
		return err
	}

	task, err := a.client.UpdateTask(ctx, id, title, description)
	if err != nil {
		a.reportError(err)
		return err
	}

	fmt.Fprintf(a.out, "Updated %s\n", task.ID)
	return nil
}

func (a *App) Delete(ctx context.Context) error {

	id, err := a.promptTaskID("Enter task id to delete")
	if err != nil {
		return err
	}

	if err := a.client.DeleteTask(ctx, id); err != nil {
		a.reportError(err)
		return err
	}

	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// promptTaskID reads a task id from the user. An id that is not a canonical
// UUID, for example one copied from an old bookmark, gets a warning up front;
// the server will reject it anyway, this just makes the reason visible.
func (a *App) promptTaskID(prompt string) (string, error) {
	id, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}

	if _, parseErr := uuid.Parse(id); parseErr != nil || len(id) != 36 {
		fmt.Fprintln(a.out, "Warning: this does not look like a current task id")
	}
	return id, nil
}
