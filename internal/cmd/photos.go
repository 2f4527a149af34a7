package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/urlparse"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

// maxConcurrentFetches bounds parallel requests for multi-id commands.
const maxConcurrentFetches = 4

func newPhotosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "photos",
		Aliases: []string{"photo", "p"},
		Short:   "Browse, inspect and edit photos",
	}

	cmd.AddCommand(newPhotosListCmd())
	cmd.AddCommand(newPhotosGetCmd())
	cmd.AddCommand(newPhotosRandomCmd())
	cmd.AddCommand(newPhotosStatsCmd())
	cmd.AddCommand(newPhotosDownloadCmd())
	cmd.AddCommand(newPhotosUpdateCmd())
	cmd.AddCommand(newPhotosLikeCmd(true))
	cmd.AddCommand(newPhotosLikeCmd(false))

	return cmd
}

var photoHeaders = []string{"ID", "SIZE", "LIKES", "AUTHOR", "DESCRIPTION"}

func photoRow(p api.Photo) []string {
	desc := str(p.Description)
	if desc == "" {
		desc = str(p.AltDescription)
	}
	return []string{
		p.ID,
		fmt.Sprintf("%dx%d", p.Width, p.Height),
		intStr(p.Likes),
		p.User.Username,
		truncate(desc, 50),
	}
}

func newPhotosListCmd() *cobra.Command {
	var orderBy string

	cmd := NewListCommand(ListConfig[api.Photo]{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the editorial feed",
		Example: strings.TrimSpace(`
  unsplash photos list
  unsplash photos list --order-by popular --per-page 30
  unsplash photos list --all --max-pages 3 -o jsonl
`),
		Args: cobra.NoArgs,
		Validate: func(_ *cobra.Command, _ []string) error {
			canonical, err := validation.ValidateEnum("order-by", orderBy, validation.PhotoOrders)
			orderBy = canonical
			return err
		},
		Fetch: func(ctx context.Context, client *api.Client, _ []string, page, perPage int) (ListResult[api.Photo], error) {
			photos, err := client.Photos().List(ctx, page, perPage, api.Order(orderBy))
			if err != nil {
				return ListResult[api.Photo]{}, err
			}
			return pageResult(photos, perPage), nil
		},
		Headers:      photoHeaders,
		RowFunc:      photoRow,
		EmptyMessage: "No photos found",
	})

	cmd.Flags().StringVar(&orderBy, "order-by", "", "Sort order: latest|oldest|popular")
	flagAlias(cmd.Flags(), "order-by", "order")
	_ = cmd.RegisterFlagCompletionFunc("order-by", cobra.FixedCompletions(validation.PhotoOrders, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func newPhotosGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|url>...",
		Short: "Show one or more photos",
		Long:  "Show photos with their EXIF data, location and counters. Several ids are fetched concurrently.",
		Example: strings.TrimSpace(`
  unsplash photos get Dwu85P9SOIk
  unsplash photos get https://unsplash.com/photos/a-mountain-Dwu85P9SOIk
  unsplash photos get Dwu85P9SOIk 4ICax0QMs8U -o json --jq '.items[].exif.model'
`),
		Args: cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ids, err := resolveIDArgs(args, urlparse.TypePhoto)
			if err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			photos, err := fetchPhotos(cmd.Context(), client, ids)
			if err != nil {
				return err
			}

			if isStructured(cmd) {
				if len(photos) == 1 {
					return printJSON(cmd, photos[0])
				}
				return printJSON(cmd, photos)
			}

			f := newFormatter(cmd)
			for i, p := range photos {
				if i > 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := f.KeyValue(photoDetail(p)...); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

// fetchPhotos retrieves ids concurrently and returns them in argument
// order. The first failure cancels the remaining requests.
func fetchPhotos(ctx context.Context, client *api.Client, ids []string) ([]*api.FullPhoto, error) {
	photos := make([]*api.FullPhoto, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, id := range ids {
		g.Go(func() error {
			photo, err := client.Photos().Get(gctx, id)
			if err != nil {
				return fmt.Errorf("photo %s: %w", id, err)
			}
			photos[i] = photo
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return photos, nil
}

func photoDetail(p *api.FullPhoto) [][2]string {
	pairs := [][2]string{
		{"ID", p.ID},
		{"Author", p.User.Username},
		{"Created", formatTime(p.CreatedAt.Time)},
		{"Size", fmt.Sprintf("%dx%d", p.Width, p.Height)},
		{"Color", str(p.Color)},
		{"Description", str(p.Description)},
		{"Alt", str(p.AltDescription)},
		{"Likes", intStr(p.Likes)},
		{"Views", intStr(p.Views)},
		{"Downloads", intStr(p.Downloads)},
	}
	if p.Exif != nil {
		pairs = append(pairs,
			[2]string{"Camera", strings.TrimSpace(str(p.Exif.Make) + " " + str(p.Exif.Model))},
			[2]string{"Exposure", str(p.Exif.ExposureTime)},
			[2]string{"Aperture", str(p.Exif.Aperture)},
			[2]string{"Focal length", str(p.Exif.FocalLength)},
			[2]string{"ISO", intStr(p.Exif.ISO)},
		)
	}
	if p.Location != nil {
		pairs = append(pairs, [2]string{"Location", locationString(p.Location)})
	}
	pairs = append(pairs, [2]string{"URL", p.URLs.Regular})
	if p.Links != nil {
		pairs = append(pairs, [2]string{"Page", p.Links.HTML})
	}
	return pairs
}

func locationString(l *api.Location) string {
	if name := str(l.Name); name != "" {
		return name
	}
	var parts []string
	for _, s := range []*string{l.City, l.Country} {
		if v := str(s); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func newPhotosRandomCmd() *cobra.Command {
	var collections, topics []string
	var username, query, orientation, contentFilter string
	var count int

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Pick random photos",
		Example: strings.TrimSpace(`
  unsplash photos random
  unsplash photos random --query forest --orientation landscape --count 5
  unsplash photos random --topics nature,travel -o json --jq '.items[].urls.regular'
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			params := api.RandomPhotoParameters{
				Username: stringPtrIfChanged(cmd, "username", username),
				Query:    stringPtrIfChanged(cmd, "query", query),
			}
			if len(collections) > 0 && len(topics) > 0 {
				return api.NewStructuredError(api.ErrValidation, "--collections and --topics cannot be combined")
			}
			if len(collections) > 0 && params.Query != nil {
				return api.NewStructuredError(api.ErrValidation, "--collections and --query cannot be combined")
			}
			for _, c := range collections {
				id, err := resolveIDArg(c, urlparse.TypeCollection)
				if err != nil {
					return err
				}
				params.Collections = append(params.Collections, id)
			}
			params.Topics = topics

			o, err := validation.ValidateEnum("orientation", orientation, validation.Orientations)
			if err != nil {
				return err
			}
			params.Orientation = api.Orientation(o)
			cf, err := validation.ValidateEnum("content-filter", contentFilter, validation.ContentFilters)
			if err != nil {
				return err
			}
			params.ContentFilter = api.ContentFilter(cf)
			if flagOrAliasChanged(cmd, "count") {
				if err := validation.ValidateCount(count); err != nil {
					return err
				}
				params.Count = api.Int(count)
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			photos, err := client.Photos().Random(cmd.Context(), params)
			if err != nil {
				return err
			}

			f := newFormatter(cmd)
			if f.Structured() {
				return f.Output(photos)
			}
			f.StartTable(photoHeaders)
			for _, p := range photos {
				f.Row(photoRow(p)...)
			}
			return f.EndTable()
		}),
	}

	cmd.Flags().StringSliceVar(&collections, "collections", nil, "Restrict to collection ids (comma-separated)")
	cmd.Flags().StringSliceVar(&topics, "topics", nil, "Restrict to topic ids or slugs (comma-separated)")
	cmd.Flags().StringVar(&username, "username", "", "Restrict to a photographer")
	cmd.Flags().StringVar(&query, "query", "", "Restrict to photos matching a search term")
	cmd.Flags().StringVar(&orientation, "orientation", "", "landscape|portrait|squarish")
	cmd.Flags().StringVar(&contentFilter, "content-filter", "", "low|high")
	cmd.Flags().IntVar(&count, "count", 1, "Number of photos (1-30)")
	flagAlias(cmd.Flags(), "username", "user")
	flagAlias(cmd.Flags(), "count", "n")
	_ = cmd.RegisterFlagCompletionFunc("orientation", cobra.FixedCompletions(validation.Orientations, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("content-filter", cobra.FixedCompletions(validation.ContentFilters, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// statisticsFlags registers --resolution and --quantity and returns a
// builder for the request parameters.
func statisticsFlags(cmd *cobra.Command) func() (api.StatisticsParameters, error) {
	var resolution string
	var quantity int
	cmd.Flags().StringVar(&resolution, "resolution", "", "History resolution: days")
	cmd.Flags().IntVar(&quantity, "quantity", 30, "Number of history points (1-30)")

	return func() (api.StatisticsParameters, error) {
		var params api.StatisticsParameters
		res, err := validation.ValidateEnum("resolution", resolution, validation.Resolutions)
		if err != nil {
			return params, err
		}
		params.Resolution = res
		if flagOrAliasChanged(cmd, "quantity") {
			if err := validation.ValidateQuantity(quantity); err != nil {
				return params, err
			}
			params.Quantity = api.Int(quantity)
		}
		return params, nil
	}
}

func printStatistics(cmd *cobra.Command, subject string, s *api.Statistics) error {
	f := newFormatter(cmd)
	if f.Structured() {
		return f.Output(s)
	}
	f.StartTable([]string{"METRIC", "TOTAL", "CHANGE"})
	for _, row := range []struct {
		name   string
		series *api.StatisticsSeries
	}{
		{"downloads", s.Downloads},
		{"views", s.Views},
		{"likes", s.Likes},
	} {
		if row.series == nil {
			continue
		}
		change := ""
		if h := row.series.Historical; h != nil {
			change = fmt.Sprintf("%+d over %d %s", h.Change, h.Quantity, h.Resolution)
		}
		f.Row(row.name, fmt.Sprintf("%d", int(row.series.Total)), change)
	}
	if err := f.EndTable(); err != nil {
		return err
	}
	printHint(cmd, "# Statistics for %s", subject)
	return nil
}

func newPhotosStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <id|url>",
		Short: "Show download, view and like history of a photo",
		Args:  cobra.ExactArgs(1),
	}
	params := statisticsFlags(cmd)
	cmd.RunE = RunE(func(cmd *cobra.Command, args []string) error {
		id, err := resolveIDArg(args[0], urlparse.TypePhoto)
		if err != nil {
			return err
		}
		p, err := params()
		if err != nil {
			return err
		}
		client, err := getClient()
		if err != nil {
			return err
		}
		stats, err := client.Photos().Statistics(cmd.Context(), id, p)
		if err != nil {
			return err
		}
		return printStatistics(cmd, "photo "+id, stats)
	})
	return cmd
}

func newPhotosDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <id|url>",
		Short: "Register a download and print the file URL",
		Long: strings.TrimSpace(`
Call the download endpoint of a photo. Applications must do this whenever a
photo is downloaded so the photographer is credited. The returned URL points
at the original file.
`),
		Example: strings.TrimSpace(`
  unsplash photos download Dwu85P9SOIk
  curl -L "$(unsplash photos download Dwu85P9SOIk -q)" -o photo.jpg
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := resolveIDArg(args[0], urlparse.TypePhoto)
			if err != nil {
				return err
			}
			client, err := getClient()
			if err != nil {
				return err
			}
			link, err := client.Photos().DownloadLink(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isStructured(cmd) {
				return printJSON(cmd, link)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), link.URL)
			return nil
		}),
	}
}

func newPhotosUpdateCmd() *cobra.Command {
	var description, locName, city, country, latitude, longitude string
	var exifMake, exifModel, exposure, aperture, focal string
	var tags []string
	var showOnProfile, confidential bool
	var iso int

	cmd := &cobra.Command{
		Use:   "update <id|url>",
		Short: "Edit a photo you own",
		Long:  "Edit the description, tags, location or EXIF data of a photo. Requires the write_photos scope.",
		Example: strings.TrimSpace(`
  unsplash photos update Dwu85P9SOIk --description "Morning fog"
  unsplash photos update Dwu85P9SOIk --latitude 46.55 --longitude 7.98 --city Lauterbrunnen
  unsplash photos update Dwu85P9SOIk --tags fog,alps --dry-run
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := resolveIDArg(args[0], urlparse.TypePhoto)
			if err != nil {
				return err
			}
			if !anyFlagChanged(cmd, "description", "show-on-profile", "tags",
				"latitude", "longitude", "location-name", "city", "country", "confidential",
				"exif-make", "exif-model", "exposure-time", "aperture", "focal-length", "iso") {
				return fmt.Errorf("at least one field flag is required")
			}

			params := api.PhotoUpdateParameters{
				Description:   stringPtrIfChanged(cmd, "description", description),
				ShowOnProfile: boolPtrIfChanged(cmd, "show-on-profile", showOnProfile),
			}
			if params.Description != nil {
				if err := validation.ValidateLength("description", description, validation.MaxPhotoDescription); err != nil {
					return err
				}
			}
			if flagOrAliasChanged(cmd, "tags") {
				params.Tags = tags
			}

			if anyFlagChanged(cmd, "latitude", "longitude", "location-name", "city", "country", "confidential") {
				loc := &api.LocationParameters{
					Name:         stringPtrIfChanged(cmd, "location-name", locName),
					City:         stringPtrIfChanged(cmd, "city", city),
					Country:      stringPtrIfChanged(cmd, "country", country),
					Confidential: boolPtrIfChanged(cmd, "confidential", confidential),
				}
				if flagOrAliasChanged(cmd, "latitude") {
					v, err := validation.ParseCoordinate("latitude", latitude)
					if err != nil {
						return err
					}
					loc.Latitude = api.Float(v)
				}
				if flagOrAliasChanged(cmd, "longitude") {
					v, err := validation.ParseCoordinate("longitude", longitude)
					if err != nil {
						return err
					}
					loc.Longitude = api.Float(v)
				}
				params.Location = loc
			}

			if anyFlagChanged(cmd, "exif-make", "exif-model", "exposure-time", "aperture", "focal-length", "iso") {
				params.Exif = &api.ExifParameters{
					Make:         stringPtrIfChanged(cmd, "exif-make", exifMake),
					Model:        stringPtrIfChanged(cmd, "exif-model", exifModel),
					ExposureTime: stringPtrIfChanged(cmd, "exposure-time", exposure),
					Aperture:     stringPtrIfChanged(cmd, "aperture", aperture),
					FocalLength:  stringPtrIfChanged(cmd, "focal-length", focal),
					ISO:          intPtrIfChanged(cmd, "iso", iso),
				}
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			preview := previewCall(client, "update", "photo", api.NewEndpoint(api.EndpointUpdatePhoto, id), params)
			if ok, err := maybeDryRun(cmd, preview); ok {
				return err
			}

			photo, err := client.Photos().Update(cmd.Context(), id, params)
			if err != nil {
				return err
			}
			if isStructured(cmd) {
				return printJSON(cmd, photo)
			}
			printAction(cmd, "Updated", "photo", photo.ID, truncate(str(photo.Description), 50))
			return nil
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&description, "description", "", "Photo description")
	fs.BoolVar(&showOnProfile, "show-on-profile", true, "Show the photo on your profile")
	fs.StringSliceVar(&tags, "tags", nil, "Tags (comma-separated, replaces existing tags)")
	fs.StringVar(&latitude, "latitude", "", "Location latitude")
	fs.StringVar(&longitude, "longitude", "", "Location longitude")
	fs.StringVar(&locName, "location-name", "", "Location name")
	fs.StringVar(&city, "city", "", "Location city")
	fs.StringVar(&country, "country", "", "Location country")
	fs.BoolVar(&confidential, "confidential", false, "Hide the exact location")
	fs.StringVar(&exifMake, "exif-make", "", "Camera make")
	fs.StringVar(&exifModel, "exif-model", "", "Camera model")
	fs.StringVar(&exposure, "exposure-time", "", "Exposure time, e.g. 1/250")
	fs.StringVar(&aperture, "aperture", "", "Aperture, e.g. 2.8")
	fs.StringVar(&focal, "focal-length", "", "Focal length, e.g. 35")
	fs.IntVar(&iso, "iso", 0, "ISO speed")
	flagAlias(fs, "description", "desc")
	flagAlias(fs, "latitude", "lat")
	flagAlias(fs, "longitude", "lng")
	return cmd
}

func newPhotosLikeCmd(like bool) *cobra.Command {
	use, short, kind, action := "like", "Like a photo", api.EndpointLikePhoto, "Liked"
	if !like {
		use, short, kind, action = "unlike", "Remove a like from a photo", api.EndpointUnlikePhoto, "Unliked"
	}

	return &cobra.Command{
		Use:   use + " <id|url>",
		Short: short,
		Long:  short + ". Requires the write_likes scope.",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := resolveIDArg(args[0], urlparse.TypePhoto)
			if err != nil {
				return err
			}
			client, err := getClient()
			if err != nil {
				return err
			}
			preview := previewCall(client, use, "photo", api.NewEndpoint(kind, id), nil)
			if ok, err := maybeDryRun(cmd, preview); ok {
				return err
			}

			var result *api.LikeResult
			if like {
				result, err = client.Photos().Like(cmd.Context(), id)
			} else {
				result, err = client.Photos().Unlike(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			if isStructured(cmd) {
				return printJSON(cmd, result)
			}
			printAction(cmd, action, "photo", result.Photo.ID, intStr(result.Photo.Likes)+" likes")
			return nil
		}),
	}
}
