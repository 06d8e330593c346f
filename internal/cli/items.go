package cli

import (
	"errors"
	"strings"

	"stickynote/internal/model"
	"stickynote/internal/mutate"
	"stickynote/internal/session"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var pending bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.loadItems(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if pending {
				out := make([]model.Item, 0, len(items))
				for _, it := range items {
					if !it.Completed {
						out = append(out, it)
					}
				}
				items = out
			}
			return writeOut(cmd, app, items)
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "Only show items that are not done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Append a new item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return withSession(cmd, app, func(sess *session.Session) (any, error) {
				res := sess.Add(text)
				if !res.Changed {
					return nil, errEmptyText
				}
				return itemFrom(res)
			})
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "done <item-id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle an item's completed flag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(sess *session.Session) (any, error) {
				id, err := mutate.ResolveID(sess.Items(), args[0])
				if err != nil {
					return nil, err
				}
				return itemFrom(sess.Toggle(id))
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <item-id> <text...>",
		Short: "Replace an item's text (empty text deletes it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			return withSession(cmd, app, func(sess *session.Session) (any, error) {
				id, err := mutate.ResolveID(sess.Items(), args[0])
				if err != nil {
					return nil, err
				}
				before, _ := mutate.Find(sess.Items(), id)
				res := sess.Edit(id, text)
				if res.Type == model.EventItemDelete {
					return before, nil
				}
				it, _ := mutate.Find(res.Items, id)
				return it, nil
			})
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item-id>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(sess *session.Session) (any, error) {
				id, err := mutate.ResolveID(sess.Items(), args[0])
				if err != nil {
					return nil, err
				}
				removed, _ := mutate.Find(sess.Items(), id)
				sess.Delete(id)
				return removed, nil
			})
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	var before string
	var after string
	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Reorder an item relative to another one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (before == "" && after == "") || (before != "" && after != "") {
				return writeErr(cmd, errors.New("provide exactly one of --before or --after"))
			}
			refArg, insertBefore := before, true
			if after != "" {
				refArg, insertBefore = after, false
			}
			return withSession(cmd, app, func(sess *session.Session) (any, error) {
				items := sess.Items()
				id, err := mutate.ResolveID(items, args[0])
				if err != nil {
					return nil, err
				}
				ref, err := mutate.ResolveID(items, refArg)
				if err != nil {
					return nil, err
				}
				if id == ref {
					return nil, errors.New("cannot move an item relative to itself")
				}
				// Reorder only shifts the insert-after side for an item moving
				// down, so "before a later item" is expressed as "after its
				// predecessor".
				if insertBefore {
					idx, refIdx := mutate.IndexOf(items, id), mutate.IndexOf(items, ref)
					if idx < refIdx {
						ref, insertBefore = items[refIdx-1].ID, false
					}
				}
				return sess.Reorder(id, ref, insertBefore).Items, nil
			})
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Move before item id")
	cmd.Flags().StringVar(&after, "after", "", "Move after item id")
	return cmd
}
