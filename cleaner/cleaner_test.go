package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanProductPage(t *testing.T) {
	pageHTML := `<!DOCTYPE html>
<html>
<head><title>Colchón Visco Real</title><style>.precio { color: red; }</style></head>
<body>
<nav>Inicio &gt; Colchones</nav>
<div id="centro">
<h1>Colchón Visco Real</h1>
<p>Colchón de <strong>viscoelástica</strong> con núcleo de alta densidad.</p>
<h2>Medidas disponibles</h2>
<table>
<tr><th>Medida</th><th>Precio</th></tr>
<tr><td>90x190</td><td>299€</td></tr>
<tr><td>150x190</td><td>449€</td></tr>
</table>
<ul>
<li>Garantía de 10 años</li>
<li>Envío gratuito</li>
</ul>
<script>addToCart();</script>
<form><input type="text"><button>Comprar</button></form>
</div>
<footer>Copyright 2025</footer>
</body>
</html>`

	cleaner := NewMarkdownCleaner()
	text, err := cleaner.Clean(pageHTML)
	require.NoError(t, err)

	// Structure survives as markdown
	assert.Contains(t, text, "# Colchón Visco Real")
	assert.Contains(t, text, "## Medidas disponibles")
	assert.Contains(t, text, "**viscoelástica**")
	assert.Contains(t, text, "| 90x190 | 299€ |")
	assert.Contains(t, text, "| 150x190 | 449€ |")
	assert.Contains(t, text, "- Garantía de 10 años")
	assert.Contains(t, text, "- Envío gratuito")

	// Markup and non-content elements are gone
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "addToCart")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Comprar")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "Inicio")
}

func TestCleanFallsBackToBody(t *testing.T) {
	pageHTML := `<html><body><p>Texto sin contenedor conocido.</p></body></html>`

	cleaner := NewMarkdownCleaner()
	text, err := cleaner.Clean(pageHTML)
	require.NoError(t, err)
	assert.Contains(t, text, "Texto sin contenedor conocido.")
}

func TestCleanEmptyInput(t *testing.T) {
	cleaner := NewMarkdownCleaner()

	text, err := cleaner.Clean("")
	require.NoError(t, err)
	assert.Equal(t, "", text)

	text, err = cleaner.Clean("   \n  ")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestCleanCollapsesBlankLines(t *testing.T) {
	pageHTML := `<html><body><div id="content">
<p>Primero.</p>
<div></div>
<div></div>
<div></div>
<p>Segundo.</p>
</div></body></html>`

	cleaner := NewMarkdownCleaner()
	text, err := cleaner.Clean(pageHTML)
	require.NoError(t, err)

	assert.NotContains(t, text, "\n\n\n")
	assert.Contains(t, text, "Primero.")
	assert.Contains(t, text, "Segundo.")
}
