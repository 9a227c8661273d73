package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLToText_Structure(t *testing.T) {
	html := `<html><head><title>Job</title><style>.x{}</style></head><body>
<nav>Home | Jobs</nav>
<h1>Senior Go Engineer</h1>
<p>We build <b>distributed</b> systems.</p>
<h2>Requirements</h2>
<ul>
  <li>5+ years of Go</li>
  <li>Kubernetes in <em>production</em></li>
</ul>
<script>track()</script>
<footer>Copyright</footer>
</body></html>`

	text, err := HTMLToText(html)
	require.NoError(t, err)

	want := "# Senior Go Engineer\nWe build distributed systems.\n\n## Requirements\n- 5+ years of Go\n- Kubernetes in production"
	assert.Equal(t, want, text)
}

func TestHTMLToText_LineBreaks(t *testing.T) {
	text, err := HTMLToText("<div>Go<br>Python</div><div>Docker</div>")
	require.NoError(t, err)
	assert.Equal(t, "Go\nPython\nDocker", text)
}

func TestHTMLToText_RemovesNoise(t *testing.T) {
	text, err := HTMLToText(`<body><div class="cookie-banner">Accept cookies</div><main><p>Role details</p></main></body>`)
	require.NoError(t, err)
	assert.Equal(t, "Role details", text)
}

func TestHTMLToText_Empty(t *testing.T) {
	text, err := HTMLToText("")
	require.NoError(t, err)
	assert.Empty(t, text)
}
