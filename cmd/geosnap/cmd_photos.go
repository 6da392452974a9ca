// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/juju/gnuflag"

	"github.com/tomtom215/geosnap/internal/api"
	"github.com/tomtom215/geosnap/internal/format"
	"github.com/tomtom215/geosnap/internal/gallery"
	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/session"
	"github.com/tomtom215/geosnap/internal/store"
)

type photosCommand struct {
	status string
	view   string
	mine   bool
	place  string
	city   string
	page   int
	limit  int

	filter store.Filter
	mode   store.ViewMode
}

func (c *photosCommand) Info() *Info {
	info := &Info{Name: "photos", Purpose: "browse approved photos, or your own with --mine"}
	if c.mine {
		info.Guard = session.RequireAuth
	}
	return info
}

func (c *photosCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.status, "status", "", "with --mine: all, pending, approved or rejected")
	f.StringVar(&c.view, "view", "", "grid or list")
	f.BoolVar(&c.mine, "mine", false, "show your uploads")
	f.StringVar(&c.place, "place", "", "only photos of this place id")
	f.StringVar(&c.city, "city", "", "only photos from this city")
	f.IntVar(&c.page, "page", models.DefaultPage, "page number")
	f.IntVar(&c.limit, "limit", models.DefaultLimit, "photos per page")
}

func (c *photosCommand) Init(args []string) error {
	var err error
	if c.filter, err = store.ParseFilter(c.status); err != nil {
		return usageErrorf("%v", err)
	}
	if c.mode, err = store.ParseViewMode(c.view); err != nil {
		return usageErrorf("%v", err)
	}
	if c.filter != store.FilterAll && !c.mine {
		return usageErrorf("--status needs --mine; the public gallery only has approved photos")
	}
	return checkEmpty(args)
}

func (c *photosCommand) Run(ctx context.Context, app *App) error {
	app.photos.SetFilter(c.filter)
	app.photos.SetView(c.mode)
	state := app.photos.State()

	q := models.PhotoQuery{
		PageQuery: models.PageQuery{Page: c.page, Limit: c.limit},
		Status:    state.Filter.Status(),
		PlaceID:   c.place,
		City:      c.city,
	}
	var (
		page *models.Page[models.Photo]
		err  error
	)
	if c.mine {
		page, err = app.gallery.MyPhotos(ctx, q)
	} else {
		page, err = app.gallery.Photos(ctx, q)
	}
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		fmt.Fprintln(app.out, "No photos found")
		return nil
	}

	var t = newTable("ID", "PLACE", "STATUS", "LIKES")
	if state.View == store.ViewList {
		t = newTable("ID", "PLACE", "CITY", "STATUS", "LIKES", "VIEWS", "SIZE", "LOCATION", "UPLOADED")
	}
	for _, p := range page.Items {
		status := p.ApprovalStatus
		if p.RejectionReason != "" {
			status += ": " + p.RejectionReason
		}
		if state.View == store.ViewList {
			t.AddRow(p.ID, p.PlaceName, p.City, status, p.Likes, p.Views,
				format.FileSize(p.FileSize), format.Coordinates(p.Location.Lat(), p.Location.Lon()),
				format.RelativeTime(p.CreatedAt))
			continue
		}
		t.AddRow(p.ID, p.PlaceName, status, p.Likes)
	}
	fmt.Fprintln(app.out, t)
	printPage(app, page.Pagination)
	return nil
}

func printPage(app *App, p models.Pagination) {
	if p.TotalPages > 1 {
		fmt.Fprintf(app.out, "Page %d of %d (%s total)\n", p.CurrentPage, p.TotalPages, format.Number(int64(p.Total)))
	}
}

type uploadCommand struct {
	files     stringsFlag
	placeID   string
	placeName string
}

func (c *uploadCommand) Info() *Info {
	return &Info{
		Name:    "upload",
		Args:    "[file...]",
		Purpose: "upload photos of a place for moderation",
		Guard:   session.RequireAuth,
	}
}

func (c *uploadCommand) SetFlags(f *gnuflag.FlagSet) {
	f.Var(&c.files, "file", "image to upload (repeatable)")
	f.StringVar(&c.placeID, "place-id", "", "id of an existing place")
	f.StringVar(&c.placeName, "place-name", "", "name of a new place, located with the geocoder")
}

func (c *uploadCommand) Init(args []string) error {
	c.files = append(c.files, args...)
	if len(c.files) == 0 {
		return usageErrorf("no files specified")
	}
	if c.placeID != "" && c.placeName != "" {
		return usageErrorf("--place-id and --place-name are mutually exclusive")
	}
	return nil
}

func (c *uploadCommand) Run(ctx context.Context, app *App) error {
	uploads := make([]api.Upload, 0, len(c.files))
	for _, path := range c.files {
		up, file, err := api.OpenUpload(path)
		if err != nil {
			return err
		}
		defer file.Close()
		uploads = append(uploads, up)
	}

	photos, err := app.gallery.Upload(ctx, gallery.Target{PlaceID: c.placeID, PlaceName: c.placeName}, uploads)
	if err != nil {
		return err
	}
	t := newTable("ID", "FILE", "PLACE", "STATUS")
	for _, p := range photos {
		t.AddRow(p.ID, p.FileName, p.PlaceName, p.ApprovalStatus)
	}
	fmt.Fprintln(app.out, t)
	return nil
}

type placesCommand struct {
	bounds string
	search string
	city   string
	page   int
}

func (c *placesCommand) Info() *Info {
	return &Info{Name: "places", Purpose: "list places, or those inside --map bounds"}
}

func (c *placesCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.bounds, "map", "", "bounds as north,south,east,west")
	f.StringVar(&c.search, "search", "", "name search")
	f.StringVar(&c.city, "city", "", "only places in this city")
	f.IntVar(&c.page, "page", models.DefaultPage, "page number")
}

func (c *placesCommand) Init(args []string) error {
	if c.bounds != "" {
		if _, err := parseBounds(c.bounds); err != nil {
			return usageErrorf("%v", err)
		}
	}
	return checkEmpty(args)
}

// parseBounds reads "north,south,east,west".
func parseBounds(s string) (models.MapBounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return models.MapBounds{}, fmt.Errorf("bounds %q: want north,south,east,west", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return models.MapBounds{}, fmt.Errorf("bounds %q: %w", s, err)
		}
		v[i] = f
	}
	return models.MapBounds{North: v[0], South: v[1], East: v[2], West: v[3]}, nil
}

func (c *placesCommand) Run(ctx context.Context, app *App) error {
	var places []models.Place
	var pagination models.Pagination
	if c.bounds != "" {
		b, _ := parseBounds(c.bounds)
		in, err := app.gallery.PlacesIn(ctx, b)
		if err != nil {
			return err
		}
		places = in
	} else {
		page, err := app.gallery.Places(ctx, models.PlaceQuery{
			PageQuery: models.PageQuery{Page: c.page},
			Search:    c.search,
			City:      c.city,
		})
		if err != nil {
			return err
		}
		places, pagination = page.Items, page.Pagination
	}
	if len(places) == 0 {
		fmt.Fprintln(app.out, "No places found")
		return nil
	}

	t := newTable("ID", "NAME", "CITY", "PHOTOS", "LOCATION")
	for _, p := range places {
		t.AddRow(p.ID, p.Name, p.City, format.Number(int64(p.PhotoCount)), format.Coordinates(p.Location.Lat(), p.Location.Lon()))
	}
	fmt.Fprintln(app.out, t)
	printPage(app, pagination)
	return nil
}

type blogsCommand struct {
	place string
	mine  bool
	page  int
}

func (c *blogsCommand) Info() *Info {
	info := &Info{Name: "blogs", Purpose: "list published travel blogs"}
	if c.mine {
		info.Guard = session.RequireAuth
	}
	return info
}

func (c *blogsCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.place, "place", "", "only blogs about this place id")
	f.BoolVar(&c.mine, "mine", false, "list your blogs, drafts included")
	f.IntVar(&c.page, "page", models.DefaultPage, "page number")
}

func (c *blogsCommand) Init(args []string) error {
	if c.mine && c.place != "" {
		return usageErrorf("--mine and --place are mutually exclusive")
	}
	return checkEmpty(args)
}

func (c *blogsCommand) Run(ctx context.Context, app *App) error {
	q := models.PageQuery{Page: c.page}
	var (
		page *models.Page[models.Blog]
		err  error
	)
	switch {
	case c.mine:
		page, err = app.gallery.MyBlogs(ctx, q)
	case c.place != "":
		page, err = app.gallery.BlogsAt(ctx, c.place, q)
	default:
		page, err = app.gallery.Blogs(ctx, q)
	}
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		fmt.Fprintln(app.out, "No blogs found")
		return nil
	}

	t := newTable("ID", "TITLE", "AUTHOR", "STATUS", "PUBLISHED", "VIEWS")
	for _, b := range page.Items {
		published := "-"
		if b.PublishedAt != nil {
			published = format.Date(*b.PublishedAt)
		}
		t.AddRow(b.ID, format.Truncate(b.Title, 40), b.AuthorID.Name, b.Status, published, b.Views)
	}
	fmt.Fprintln(app.out, t)
	printPage(app, page.Pagination)
	return nil
}

type geocodeCommand struct {
	commandBase
	query string
}

func (c *geocodeCommand) Info() *Info {
	return &Info{Name: "geocode", Args: "<place name>", Purpose: "look up the coordinates of a place name"}
}

func (c *geocodeCommand) Init(args []string) error {
	c.query = strings.TrimSpace(strings.Join(args, " "))
	if c.query == "" {
		return usageErrorf("no place name specified")
	}
	return nil
}

func (c *geocodeCommand) Run(ctx context.Context, app *App) error {
	if app.geocoder == nil {
		return errors.New("geocoder.url is not configured")
	}
	res, err := app.geocoder.Search(ctx, c.query)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%s\n%s\n", res.DisplayName, format.Coordinates(res.Lat, res.Lon))
	return nil
}

type albumCommand struct {
	commandBase
	action string
	link   string
}

func (c *albumCommand) Info() *Info {
	return &Info{
		Name:    "album",
		Args:    "validate <link> | sync <link> | status",
		Purpose: "import a shared Google Photos album",
		Guard:   session.RequireAuth,
	}
}

func (c *albumCommand) Init(args []string) error {
	if len(args) == 0 {
		return usageErrorf("no action specified")
	}
	c.action, args = args[0], args[1:]
	switch c.action {
	case "validate", "sync":
		if len(args) == 0 {
			return usageErrorf("no album link specified")
		}
		c.link, args = args[0], args[1:]
	case "status":
	default:
		return usageErrorf("unknown album action %q", c.action)
	}
	return checkEmpty(args)
}

func (c *albumCommand) Run(ctx context.Context, app *App) error {
	if c.action == "status" {
		s, err := app.album.Status(ctx)
		if err != nil {
			return err
		}
		t := newTable()
		t.AddRow("Imported:", s.TotalSynced)
		t.AddRow("Pending approval:", s.PendingApproval)
		t.AddRow("Approved:", s.Approved)
		t.AddRow("Rejected:", s.Rejected)
		if s.LastSyncAt != nil {
			t.AddRow("Last sync:", format.RelativeTime(*s.LastSyncAt))
		}
		fmt.Fprintln(app.out, t)
		return nil
	}

	app.album.SetLink(c.link)
	check, err := app.album.Validate(ctx)
	if err != nil {
		return err
	}
	if c.action == "validate" {
		if check.AlbumTitle != "" {
			fmt.Fprintf(app.out, "%s: %d photos\n", check.AlbumTitle, check.PhotoCount)
		}
		return nil
	}
	res, err := app.album.Sync(ctx)
	if err != nil {
		return err
	}
	if res.Skipped > 0 || res.Failed > 0 {
		fmt.Fprintf(app.out, "Skipped %d, failed %d\n", res.Skipped, res.Failed)
	}
	return nil
}
