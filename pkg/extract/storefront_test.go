package extract

import "testing"

func TestHasTextSearch(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{
			"search input on a shop",
			`<html><body><input type="search" name="q">
			 <p>Aggiungi al carrello</p></body></html>`,
			true,
		},
		{
			"search word in text on a shop",
			`<html><body><p>Cerca nel catalogo</p><p>prezzo: 10</p></body></html>`,
			true,
		},
		{
			"search box without any shop signal",
			`<html><body><input type="search" name="q"><p>Il nostro blog</p></body></html>`,
			false,
		},
		{
			"shop without search",
			`<html><body><p>Acquista subito</p></body></html>`,
			false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasTextSearch(mustParse(t, tc.html)); got != tc.want {
				t.Errorf("HasTextSearch = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasRefinedUX(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{
			"nav and footer pass two checks",
			`<html><body><nav><a href="/a">a</a></nav><footer>piva</footer></body></html>`,
			true,
		},
		{
			"product grid and rich nav",
			`<html><body>
			 <nav><a>1</a><a>2</a><a>3</a><a>4</a></nav>
			 <div class="product-grid"></div></body></html>`,
			true,
		},
		{
			"menu list counts as primary nav",
			`<html><body>
			 <ul class="main-menu"><li><a>1</a></li><li><a>2</a></li><li><a>3</a></li><li><a>4</a></li></ul>
			 <footer></footer></body></html>`,
			true,
		},
		{
			"bare page fails",
			`<html><body><p>ciao</p></body></html>`,
			false,
		},
		{
			"single landmark is not enough",
			`<html><body><footer></footer></body></html>`,
			false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasRefinedUX(mustParse(t, tc.html)); got != tc.want {
				t.Errorf("HasRefinedUX = %v, want %v", got, tc.want)
			}
		})
	}
}
