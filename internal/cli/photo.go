package cli

import (
	"context"
	"os"
)

// AttachPhoto copies an image file into the photo directory and records it
// on the plant's timeline.
func (a *App) AttachPhoto(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter plant id", os.Stdout)
	if err != nil {
		return err
	}
	path, err := GetSimpleText(a.reader, "Enter path to image file", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.svc.AttachPhoto(ctx, id, path)
	if err != nil {
		return err
	}
	printlnFn("Attached photo", p.URI)
	return nil
}
