package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell/v2"
	pendant "github.com/iwtcode/pendantService"
	"github.com/iwtcode/pendantService/models"
)

var errUsage = errors.New("wrong number of arguments")

func printEvents(shell *ishell.Shell, events <-chan models.Event) {
	for ev := range events {
		if ev.Interlock != nil {
			shell.Printf("[%s] %s %s #%d\n", ev.Interlock.Code, ev.Interlock.Status, ev.Interlock.Message, ev.Interlock.Counter)
		}
	}
}

func printEditor(c *ishell.Context, st *models.EditorState) {
	c.Printf("%s  line %d  part %d\n", st.Program, st.Line, st.Part)
	for _, l := range st.Lines {
		marker := "  "
		if l.Index == st.Line {
			marker = "> "
		}
		c.Printf("%s%3d: %s%s\n", marker, l.Index+1, strings.Repeat("  ", l.Indentation), l.Text)
	}
	if st.HighlightEnd > st.HighlightStart {
		c.Printf("       [%s]\n", st.Text[st.HighlightStart:st.HighlightEnd])
	}
}

func printExecution(c *ishell.Context, st *models.ExecutionState) {
	c.Printf("%s  %s  mode %s  line %d  tool %v  pos %.3v\n", st.Program, st.State, st.Mode, st.Line+1, st.ToolOn, st.Position)
}

func onOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected on/off, got %q", s)
}

// edit применяет команду редактора и печатает результат.
func edit(client *pendant.Client, req models.EditRequest) func(*ishell.Context) {
	return func(c *ishell.Context) {
		st, err := client.Edit(context.Background(), req)
		if err != nil {
			c.Err(err)
			return
		}
		printEditor(c, st)
	}
}

func editWithArgs(client *pendant.Client, n int, build func(args []string) (models.EditRequest, error)) func(*ishell.Context) {
	return func(c *ishell.Context) {
		if len(c.Args) < n {
			c.Err(errUsage)
			return
		}
		req, err := build(c.Args)
		if err != nil {
			c.Err(err)
			return
		}
		edit(client, req)(c)
	}
}

func execution(fn func(ctx context.Context) (*models.ExecutionState, error)) func(*ishell.Context) {
	return func(c *ishell.Context) {
		st, err := fn(context.Background())
		if err != nil {
			c.Err(err)
			return
		}
		printExecution(c, st)
	}
}

func transition(client *pendant.Client, status string) func(*ishell.Context) {
	return func(c *ishell.Context) {
		if len(c.Args) != 1 {
			c.Err(errUsage)
			return
		}
		res, err := client.HandleError(context.Background(), strings.ToUpper(c.Args[0]), status)
		if err != nil {
			c.Err(err)
			return
		}
		c.Printf("%s %s: handled=%v\n", res.Code, res.Status, res.Handled)
	}
}

func registerCommands(shell *ishell.Shell, client *pendant.Client) {
	ctx := context.Background()

	shell.AddCmd(&ishell.Cmd{
		Name: "programs",
		Help: "list saved programs",
		Func: func(c *ishell.Context) {
			list, err := client.ListPrograms(ctx)
			if err != nil {
				c.Err(err)
				return
			}
			for _, p := range list {
				c.Printf("%-20s %3d lines %3d points  %s\n", p.Name, p.Lines, p.Points, p.Description)
			}
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "create",
		Help: "create <name> [description]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(errUsage)
				return
			}
			if _, err := client.CreateProgram(ctx, c.Args[0], strings.Join(c.Args[1:], " ")); err != nil {
				c.Err(err)
				return
			}
			c.Println("Program created")
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "copy",
		Help: "copy <src> <dst>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Err(errUsage)
				return
			}
			if _, err := client.DuplicateProgram(ctx, c.Args[0], c.Args[1]); err != nil {
				c.Err(err)
			}
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "remove",
		Help: "remove <name>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errUsage)
				return
			}
			if err := client.DeleteProgram(ctx, c.Args[0]); err != nil {
				c.Err(err)
			}
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "save",
		Help: "write all programs to storage",
		Func: func(c *ishell.Context) {
			if err := client.SavePrograms(ctx); err != nil {
				c.Err(err)
				return
			}
			c.Println("Programs saved")
		},
	})

	// Редактор
	shell.AddCmd(&ishell.Cmd{
		Name: "open",
		Help: "open <name> in the editor",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errUsage)
				return
			}
			st, err := client.OpenProgram(ctx, c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			printEditor(c, st)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "show",
		Help: "show the open program",
		Func: func(c *ishell.Context) {
			st, err := client.EditorState(ctx)
			if err != nil {
				c.Err(err)
				return
			}
			printEditor(c, st)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "close",
		Help: "close the editor",
		Func: func(c *ishell.Context) {
			if err := client.CloseProgram(ctx); err != nil {
				c.Err(err)
			}
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "goto",
		Help: "goto <line>",
		Func: editWithArgs(client, 1, func(args []string) (models.EditRequest, error) {
			n, err := strconv.Atoi(args[0])
			return models.EditRequest{Op: models.EditGoto, Line: n - 1}, err
		}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "up",
		Help: "select the previous line",
		Func: edit(client, models.EditRequest{Op: models.EditStep, Delta: -1}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "down",
		Help: "select the next line",
		Func: edit(client, models.EditRequest{Op: models.EditStep, Delta: 1}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "left",
		Help: "select the previous field",
		Func: edit(client, models.EditRequest{Op: models.EditPrevPart}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "right",
		Help: "select the next field",
		Func: edit(client, models.EditRequest{Op: models.EditNextPart}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "part",
		Help: "part <n>: select a field of the line",
		Func: editWithArgs(client, 1, func(args []string) (models.EditRequest, error) {
			n, err := strconv.Atoi(args[0])
			return models.EditRequest{Op: models.EditSelectPart, Part: n}, err
		}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "key",
		Help: "key <tokens...>: digits, '.', PREV (backspace), Enter",
		Func: func(c *ishell.Context) {
			var st *models.EditorState
			for _, tok := range c.Args {
				var err error
				if st, err = client.Edit(ctx, models.EditRequest{Op: models.EditInput, Token: tok}); err != nil {
					c.Err(err)
					return
				}
			}
			if st != nil {
				printEditor(c, st)
			}
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "insert",
		Help: "insert <kind> [above|under]",
		Func: editWithArgs(client, 1, func(args []string) (models.EditRequest, error) {
			req := models.EditRequest{Op: models.EditInsert, Kind: args[0]}
			if len(args) > 1 {
				req.Position = args[1]
			}
			return req, nil
		}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "delete",
		Help: "delete the selected line",
		Func: edit(client, models.EditRequest{Op: models.EditDelete}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "kind",
		Help: "kind <kind>: replace the selected line",
		Func: editWithArgs(client, 1, func(args []string) (models.EditRequest, error) {
			return models.EditRequest{Op: models.EditChangeKind, Kind: args[0]}, nil
		}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "comment",
		Help: "toggle comment on the selected line",
		Func: edit(client, models.EditRequest{Op: models.EditToggleComment}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "text",
		Help: "text <words...>: replace the selected line with a remark",
		Func: editWithArgs(client, 1, func(args []string) (models.EditRequest, error) {
			return models.EditRequest{Op: models.EditSetText, Text: strings.Join(args, " ")}, nil
		}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "touchup",
		Help: "store the current pose in the selected MOVE",
		Func: edit(client, models.EditRequest{Op: models.EditTouchUp}),
	})

	// Ошибки
	shell.AddCmd(&ishell.Cmd{
		Name: "errors",
		Help: "list errors",
		Func: func(c *ishell.Context) {
			list, err := client.ListErrors(ctx)
			if err != nil {
				c.Err(err)
				return
			}
			for _, e := range list {
				c.Printf("%-10s %-8s %-9s %s\n", e.Code, e.Domain, e.Status, e.Message)
			}
		},
	})
	shell.AddCmd(&ishell.Cmd{Name: "raise", Help: "raise <code>", Func: transition(client, "Raised")})
	shell.AddCmd(&ishell.Cmd{Name: "unraise", Help: "unraise <code>", Func: transition(client, "Unraised")})
	shell.AddCmd(&ishell.Cmd{Name: "reset", Help: "reset <code>", Func: transition(client, "Reset")})
	shell.AddCmd(&ishell.Cmd{
		Name: "resetall",
		Help: "reset every inactive error",
		Func: func(c *ishell.Context) {
			codes, err := client.ResetAll(ctx)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("Reset: %s\n", strings.Join(codes, ", "))
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "interlock",
		Help: "show interlock state",
		Func: func(c *ishell.Context) {
			st, err := client.InterlockState(ctx)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("can run: %v  any errors: %v  all reset: %v  alarms reset: %v  counters: %v\n",
				st.CanRun, st.HasAnyErrors, st.HasAllErrorsReset, st.HasAlarmErrorsReset, st.Counters)
		},
	})

	// Исполнение
	shell.AddCmd(&ishell.Cmd{
		Name: "load",
		Help: "load <name> for execution",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errUsage)
				return
			}
			execution(func(ctx context.Context) (*models.ExecutionState, error) {
				return client.LoadProgram(ctx, c.Args[0])
			})(c)
		},
	})
	shell.AddCmd(&ishell.Cmd{Name: "start", Help: "start the loaded program", Func: execution(client.StartProgram)})
	shell.AddCmd(&ishell.Cmd{Name: "stop", Help: "stop execution", Func: execution(client.StopProgram)})
	shell.AddCmd(&ishell.Cmd{Name: "resume", Help: "resume a held program", Func: execution(client.ResumeProgram)})
	shell.AddCmd(&ishell.Cmd{Name: "exec", Help: "show execution state", Func: execution(client.ExecutionState)})
	shell.AddCmd(&ishell.Cmd{
		Name: "mode",
		Help: "mode <T1|T2|AUTO>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errUsage)
				return
			}
			execution(func(ctx context.Context) (*models.ExecutionState, error) {
				return client.SetMode(ctx, c.Args[0])
			})(c)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "deadman",
		Help: "deadman <on|off>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errUsage)
				return
			}
			held, err := onOff(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			execution(func(ctx context.Context) (*models.ExecutionState, error) {
				return client.SetDeadman(ctx, held)
			})(c)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "jog",
		Help: "jog <x> <y> <z>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 3 {
				c.Err(errUsage)
				return
			}
			var pos [3]float64
			for i, a := range c.Args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					c.Err(err)
					return
				}
				pos[i] = v
			}
			execution(func(ctx context.Context) (*models.ExecutionState, error) {
				return client.Jog(ctx, pos)
			})(c)
		},
	})

	// Датчики
	shell.AddCmd(&ishell.Cmd{
		Name: "sensors",
		Help: "list sensor bindings",
		Func: func(c *ishell.Context) {
			for name, code := range client.Sensors() {
				c.Printf("%-10s -> %s\n", name, code)
			}
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "signal",
		Help: "signal <sensor> <on|off>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Err(errUsage)
				return
			}
			active, err := onOff(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			if err := client.Signal(ctx, models.Signal{Sensor: c.Args[0], Active: active}); err != nil {
				c.Err(err)
			}
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "input",
		Help: "input <n> <on|off>: set a digital input",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Err(errUsage)
				return
			}
			n, err := strconv.ParseUint(c.Args[0], 10, 32)
			if err != nil {
				c.Err(err)
				return
			}
			active, err := onOff(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			idx := uint(n)
			if err := client.Signal(ctx, models.Signal{Input: &idx, Active: active}); err != nil {
				c.Err(err)
			}
		},
	})
}
