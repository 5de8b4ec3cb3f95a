package yrc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/drewfead/yrc/internal/core"
)

const absent = "None"

func orAbsent(v core.Value) string {
	if !v.Present() {
		return absent
	}
	return v.String()
}

// Print writes one block per date and one sub-block per show, in listing order.
func Print(w io.Writer, listings []core.Listing) error {
	bw := bufio.NewWriter(w)
	for _, l := range listings {
		fmt.Fprintf(bw, "Date: %s\n", l.Date)
		for _, s := range l.Shows {
			printShow(bw, s)
		}
	}
	return bw.Flush()
}

func printShow(w io.Writer, s core.Show) {
	actors := absent
	if names := s.ActorNames(); names != nil {
		actors = "[" + strings.Join(names, ", ") + "]"
	}

	fmt.Fprintf(w, "Title: %s\n", orAbsent(s.Title))
	fmt.Fprintf(w, "Release Date: %s\n", orAbsent(s.ReleaseDate))
	fmt.Fprintf(w, "Duration: %s\n", orAbsent(s.Duration))
	fmt.Fprintf(w, "Rating: %s\n", orAbsent(s.Rating))
	fmt.Fprintf(w, "Director: %s\n", orAbsent(s.Director))
	fmt.Fprintf(w, "Actors: %s\n", actors)
	fmt.Fprintln(w, "Times:")
	for _, t := range s.Times {
		fmt.Fprintf(w, "  - Time: %s, Sold Out: %s, Booking Link: %s\n",
			orAbsent(t.Time), orAbsent(t.IsSoldOut), orAbsent(t.BookingLink))
	}
	fmt.Fprintf(w, "Portrait Image: %s\n", orAbsent(s.ImagePortrait))
	fmt.Fprintf(w, "Landscape Image: %s\n", orAbsent(s.ImageLandscape))
	fmt.Fprintln(w, "---")
}
