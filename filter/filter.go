package filter

import (
	"github.com/s0up4200/tmdbctl/tmdb"
)

var defaultCompiler = NewExprCompiler(WithCache(64))

// ParseAndCreateFilter compiles an expression with the shared caching compiler
func ParseAndCreateFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the movies matching the filter, preserving order
func Apply(f Filter, movies []tmdb.MovieSummary) []tmdb.MovieSummary {
	matched := make([]tmdb.MovieSummary, 0, len(movies))
	for _, movie := range movies {
		if f.Evaluate(movie) {
			matched = append(matched, movie)
		}
	}
	return matched
}
