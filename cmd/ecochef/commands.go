package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/engine"
)

type command interface {
	exec(ctx context.Context, e *engine.Engine, out io.Writer) error
}

func parseCommand(name string, args []string, stderr io.Writer) (command, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	user := fs.String("user", "", "user id")

	switch name {
	case "recommend":
		c := &recommendCmd{}
		fs.StringVar(&c.ingredients, "ingredients", "", "ingredient text, e.g. \"tomato, onion\"")
		fs.StringVar(&c.dietary, "dietary", "", "dietary tag, e.g. vegan")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		c.user = *user
		if c.ingredients == "" {
			return nil, errors.New("recommend: -ingredients is required")
		}
		return c, nil

	case "like":
		c := &likeCmd{}
		fs.StringVar(&c.recipe, "recipe", "", "recipe title")
		fs.BoolVar(&c.liked, "liked", true, "false records a dislike")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		c.user = *user
		return c, requireFlags(name, c.user, c.recipe)

	case "feedback":
		c := &feedbackCmd{}
		fs.StringVar(&c.recipe, "recipe", "", "recipe title")
		rating := fs.String("rating", "", "rating 1..5")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		c.user = *user
		if err := requireFlags(name, c.user, c.recipe); err != nil {
			return nil, err
		}
		v, err := core.ParseRating(*rating)
		if err != nil {
			return nil, fmt.Errorf("feedback: %w", err)
		}
		c.rating = v
		return c, nil

	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
}

func requireFlags(cmd, user, recipe string) error {
	if user == "" || recipe == "" {
		return fmt.Errorf("%s: -user and -recipe are required", cmd)
	}
	return nil
}

type recommendCmd struct {
	user, ingredients, dietary string
}

func (c *recommendCmd) exec(ctx context.Context, e *engine.Engine, out io.Writer) error {
	results, err := e.Recommend(ctx, c.user, c.ingredients, c.dietary)
	if err != nil {
		return err
	}
	renderResults(out, results)
	return nil
}

type likeCmd struct {
	user, recipe string
	liked        bool
}

func (c *likeCmd) exec(ctx context.Context, e *engine.Engine, out io.Writer) error {
	if err := e.RecordLike(ctx, c.user, c.recipe, c.liked); err != nil {
		return err
	}
	verb := "liked"
	if !c.liked {
		verb = "disliked"
	}
	fmt.Fprintf(out, "%s %s %q\n", color.GreenString("ok:"), verb, c.recipe)
	return nil
}

type feedbackCmd struct {
	user, recipe string
	rating       int
}

func (c *feedbackCmd) exec(ctx context.Context, e *engine.Engine, out io.Writer) error {
	if err := e.RecordFeedback(ctx, c.user, c.recipe, c.rating); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s rated %q %d/%d\n", color.GreenString("ok:"), c.recipe, c.rating, core.MaxRating)
	return nil
}
