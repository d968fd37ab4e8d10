package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bookhaven/bookhaven-client/internal/api"
	"github.com/bookhaven/bookhaven-client/internal/books"
	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
)

func newBooksCmd(app **App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage catalog listings",
	}

	cmd.AddCommand(newBooksListCmd(app))
	cmd.AddCommand(newBooksShowCmd(app))
	cmd.AddCommand(newBooksAddCmd(app))
	cmd.AddCommand(newBooksUpdateCmd(app))
	cmd.AddCommand(newBooksRemoveCmd(app))

	return cmd
}

func newBooksListCmd(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every book in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := (*app).Books.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tGENRE\tPRICE\tRATING")
			for _, b := range catalog {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\n",
					b.ID, b.Title, b.Author, b.Genre, b.Price.StringFixed(2), b.Rating)
			}
			return w.Flush()
		},
	}
}

func newBooksShowCmd(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := (*app).Books.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s by %s\n", b.Title, b.Author)
			fmt.Fprintf(out, "Genre: %s  Price: %s  Rating: %.1f\n", b.Genre, b.Price.StringFixed(2), b.Rating)
			if b.Summary != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, b.Summary)
			}
			return nil
		},
	}
}

func openImageField(path string) (*api.FileField, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open image file")
	}
	return &api.FileField{Field: "image", Filename: path, Reader: file},
		func() { _ = file.Close() },
		nil
}

func newBooksAddCmd(app **App) *cobra.Command {
	var input books.CreateInput
	var price string
	var imagePath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a new listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := decimal.NewFromString(price)
			if err != nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal number")
			}
			input.Price = parsed

			image, closeImage, err := openImageField(imagePath)
			if err != nil {
				return err
			}
			defer closeImage()
			input.Image = image

			b, err := (*app).Books.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", b.Title, b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Title, "title", "", "Book title")
	cmd.Flags().StringVar(&input.Author, "author", "", "Book author")
	cmd.Flags().StringVar(&input.Genre, "genre", "", "Book genre")
	cmd.Flags().StringVar(&price, "price", "", "Price, e.g. 19.99")
	cmd.Flags().Float64Var(&input.Rating, "rating", 0, "Rating from 0 to 5")
	cmd.Flags().StringVar(&input.Summary, "summary", "", "Book summary")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a cover image")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("genre")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("summary")

	return cmd
}

func newBooksUpdateCmd(app **App) *cobra.Command {
	var title, author, genre, price, summary, imagePath string
	var rating float64

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a listing you own; only provided flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := books.UpdateInput{ID: args[0]}
			flags := cmd.Flags()
			if flags.Changed("title") {
				input.Title = &title
			}
			if flags.Changed("author") {
				input.Author = &author
			}
			if flags.Changed("genre") {
				input.Genre = &genre
			}
			if flags.Changed("price") {
				parsed, err := decimal.NewFromString(price)
				if err != nil {
					return pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal number")
				}
				input.Price = &parsed
			}
			if flags.Changed("rating") {
				input.Rating = &rating
			}
			if flags.Changed("summary") {
				input.Summary = &summary
			}
			if flags.Changed("image") {
				image, closeImage, err := openImageField(imagePath)
				if err != nil {
					return err
				}
				defer closeImage()
				input.Image = image
			}

			b, err := (*app).Books.Update(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Book title")
	cmd.Flags().StringVar(&author, "author", "", "Book author")
	cmd.Flags().StringVar(&genre, "genre", "", "Book genre")
	cmd.Flags().StringVar(&price, "price", "", "Price, e.g. 19.99")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating from 0 to 5")
	cmd.Flags().StringVar(&summary, "summary", "", "Book summary")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a cover image")

	return cmd
}

func newBooksRemoveCmd(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a listing you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*app).Books.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}
