package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"orion-console/apiclient"
	"orion-console/formdata"
	"orion-console/models"
)

type collaboratorFlags struct {
	firstName  string
	lastName   string
	positionID string
	teamID     string
	addTags    []string
	removeTags []string
	save       bool
}

func newFormCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Load and submit entity forms through the BFF",
	}
	cmd.AddCommand(newCollaboratorFormCmd(a))
	cmd.AddCommand(newTeamFormCmd(a))
	cmd.AddCommand(newPositionFormCmd(a))
	return cmd
}

func newCollaboratorFormCmd(a *app) *cobra.Command {
	var opts collaboratorFlags

	cmd := &cobra.Command{
		Use:   "collaborator [id]",
		Short: "Show the collaborator form; with --save, create (no id) or update it",
		Example: `  console form collaborator
  console form collaborator --first-name Jane --last-name Doe --position p1 --team t1 --tag go --save
  console form collaborator 42 --team t2 --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := optionalID(args)
			form := formdata.NewCollaboratorForm(a.bff, id)
			if err := form.Load(cmd.Context()); err != nil {
				if errors.Is(err, apiclient.ErrInvalidID) {
					return withCode(exitUsage, fmt.Errorf("invalid id %q", id))
				}
				if errors.Is(err, apiclient.ErrNotFound) {
					return withCode(exitAPI, fmt.Errorf("collaborator %s not found", id))
				}
				return withCode(exitAPI, fmt.Errorf("load collaborator form: %w", err))
			}

			flags := cmd.Flags()
			form.Update(func(f *formdata.CollaboratorFields) {
				if flags.Changed("first-name") {
					f.FirstName = opts.firstName
				}
				if flags.Changed("last-name") {
					f.LastName = opts.lastName
				}
				if flags.Changed("position") {
					f.PositionID = opts.positionID
				}
				if flags.Changed("team") {
					f.TeamID = opts.teamID
				}
				for _, t := range opts.removeTags {
					f.RemoveTag(t)
				}
				for _, t := range opts.addTags {
					f.AddTag(t)
				}
			})

			out := cmd.OutOrStdout()
			if !opts.save {
				renderCollaboratorForm(out, form)
				return nil
			}

			saved, err := form.Submit(cmd.Context())
			if err != nil {
				var verr *formdata.ValidationError
				if errors.As(err, &verr) {
					renderCollaboratorForm(out, form)
					return withCode(exitValidation, err)
				}
				return withCode(exitAPI, fmt.Errorf("save collaborator: %w", err))
			}
			fmt.Fprintf(out, "saved collaborator %s (%s)\n", saved.ID, saved.FullName())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.firstName, "first-name", "", "First name")
	f.StringVar(&opts.lastName, "last-name", "", "Last name")
	f.StringVar(&opts.positionID, "position", "", "Position ID")
	f.StringVar(&opts.teamID, "team", "", "Team ID")
	f.StringSliceVar(&opts.addTags, "tag", nil, "Tag to add (repeatable)")
	f.StringSliceVar(&opts.removeTags, "remove-tag", nil, "Tag to remove (repeatable)")
	f.BoolVar(&opts.save, "save", false, "Submit the form")
	return cmd
}

func renderCollaboratorForm(w io.Writer, form *formdata.CollaboratorForm) {
	fields := form.Fields()
	positions := form.References(formdata.RefPositions)
	teams := form.References(formdata.RefTeams)

	mode := "create"
	if p := form.Primary(); p != nil {
		mode = "edit " + p.ID
	}
	fmt.Fprintf(w, "mode: %s\n", mode)
	fmt.Fprintf(w, "firstName: %s\n", fields.FirstName)
	fmt.Fprintf(w, "lastName: %s\n", fields.LastName)
	fmt.Fprintf(w, "positionId: %s (%s)\n", fields.PositionID, formdata.ResolveName(positions, fields.PositionID))
	fmt.Fprintf(w, "teamId: %s (%s)\n", fields.TeamID, formdata.ResolveName(teams, fields.TeamID))
	fmt.Fprintf(w, "tags: %s\n", strings.Join(fields.Tags, ", "))

	fmt.Fprintln(w, "positions:")
	for _, r := range positions {
		fmt.Fprintf(w, "  %s  %s\n", r.ID, r.Name)
	}
	fmt.Fprintln(w, "teams:")
	for _, r := range teams {
		fmt.Fprintf(w, "  %s  %s\n", r.ID, r.Name)
	}

	renderValidation(w, form.Err())
}

func renderValidation(w io.Writer, err error) {
	var verr *formdata.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	names := make([]string, 0, len(verr.Fields))
	for name := range verr.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "invalid %s: %s\n", name, verr.Fields[name])
	}
}

// namedFlags 는 이름, 설명, 태그만 가진 리소스(팀, 직책) 폼의 플래그다.
type namedFlags struct {
	name        string
	description string
	addTags     []string
	removeTags  []string
	save        bool
}

func (o *namedFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.name, "name", "", "Name")
	f.StringVar(&o.description, "description", "", "Description")
	f.StringSliceVar(&o.addTags, "tag", nil, "Tag to add (repeatable)")
	f.StringSliceVar(&o.removeTags, "remove-tag", nil, "Tag to remove (repeatable)")
	f.BoolVar(&o.save, "save", false, "Submit the form")
}

type tagger interface {
	AddTag(tag string) bool
	RemoveTag(tag string)
}

func (o *namedFlags) apply(cmd *cobra.Command, name, description *string, tags tagger) {
	if cmd.Flags().Changed("name") {
		*name = o.name
	}
	if cmd.Flags().Changed("description") {
		*description = o.description
	}
	for _, t := range o.removeTags {
		tags.RemoveTag(t)
	}
	for _, t := range o.addTags {
		tags.AddTag(t)
	}
}

// namedView 는 렌더링용으로 뽑은 폼 필드다.
type namedView struct {
	ID          string
	Name        string
	Description string
	Tags        []string
}

// runNamedForm 은 REST 리소스 폼을 읽고 플래그를 반영한 뒤 보여주거나 저장한다.
func runNamedForm[T, F any](cmd *cobra.Command, kind, id string, form *formdata.Form[T, F], opts *namedFlags, apply func(*F), fieldsView func(F) namedView, savedView func(T) namedView) error {
	if err := form.Load(cmd.Context()); err != nil {
		switch {
		case errors.Is(err, apiclient.ErrInvalidID):
			return withCode(exitUsage, fmt.Errorf("invalid id %q", id))
		case errors.Is(err, apiclient.ErrNotFound):
			return withCode(exitAPI, fmt.Errorf("%s %s not found", kind, id))
		}
		return withCode(exitAPI, fmt.Errorf("load %s form: %w", kind, err))
	}
	form.Update(apply)

	out := cmd.OutOrStdout()
	render := func() {
		mode := "create"
		if form.IsEditing() {
			mode = "edit " + id
		}
		v := fieldsView(form.Fields())
		fmt.Fprintf(out, "mode: %s\n", mode)
		fmt.Fprintf(out, "name: %s\n", v.Name)
		fmt.Fprintf(out, "description: %s\n", v.Description)
		fmt.Fprintf(out, "tags: %s\n", strings.Join(v.Tags, ", "))
		renderValidation(out, form.Err())
	}
	if !opts.save {
		render()
		return nil
	}

	saved, err := form.Submit(cmd.Context())
	if err != nil {
		var verr *formdata.ValidationError
		if errors.As(err, &verr) {
			render()
			return withCode(exitValidation, err)
		}
		return withCode(exitAPI, fmt.Errorf("save %s: %w", kind, err))
	}
	v := savedView(saved)
	fmt.Fprintf(out, "saved %s %s (%s)\n", kind, v.ID, v.Name)
	return nil
}

func newTeamFormCmd(a *app) *cobra.Command {
	var opts namedFlags
	cmd := &cobra.Command{
		Use:   "team [id]",
		Short: "Show the team form; with --save, create (no id) or update it",
		Example: `  console form team --name Platform --tag infra --save
  console form team t1 --description "Core services" --save`,
		Args: cobra.MaximumNArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		id := optionalID(args)
		form := formdata.NewTeamForm(a.api.Teams, id)
		return runNamedForm(cmd, "team", id, form, &opts,
			func(f *formdata.TeamFields) { opts.apply(cmd, &f.Name, &f.Description, f) },
			func(f formdata.TeamFields) namedView {
				return namedView{Name: f.Name, Description: f.Description, Tags: f.Tags}
			},
			func(t models.Team) namedView { return namedView{ID: t.ID, Name: t.Name} },
		)
	}
	opts.register(cmd)
	return cmd
}

func newPositionFormCmd(a *app) *cobra.Command {
	var opts namedFlags
	cmd := &cobra.Command{
		Use:     "position [id]",
		Short:   "Show the position form; with --save, create (no id) or update it",
		Example: `  console form position --name Engineer --save`,
		Args:    cobra.MaximumNArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		id := optionalID(args)
		form := formdata.NewPositionForm(a.api.Positions, id)
		return runNamedForm(cmd, "position", id, form, &opts,
			func(f *formdata.PositionFields) { opts.apply(cmd, &f.Name, &f.Description, f) },
			func(f formdata.PositionFields) namedView {
				return namedView{Name: f.Name, Description: f.Description, Tags: f.Tags}
			},
			func(p models.Position) namedView { return namedView{ID: p.ID, Name: p.Name} },
		)
	}
	opts.register(cmd)
	return cmd
}

func optionalID(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return ""
}
