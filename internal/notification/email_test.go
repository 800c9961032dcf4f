package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	warrantydomain "warranto-backend/internal/warranty/domain"
)

func sampleItems() []warrantydomain.ExpiringWarranty {
	return []warrantydomain.ExpiringWarranty{
		{
			Warranty:           warrantydomain.Warranty{ID: "w1", ProductName: "Laptop", Retailer: "TechStore"},
			DaysRemaining:      3,
			ResolvedExpiryDate: time.Date(2024, 12, 4, 0, 0, 0, 0, time.Local),
		},
		{
			Warranty:           warrantydomain.Warranty{ID: "w2", ProductName: "Blender"},
			DaysRemaining:      12,
			ResolvedExpiryDate: time.Date(2024, 12, 13, 0, 0, 0, 0, time.Local),
		},
	}
}

func TestRenderExpiryEmailText(t *testing.T) {
	text := renderExpiryEmailText(sampleItems(), 30)

	assert.Contains(t, text, "You have 2 warranties expiring within the next 30 days")
	assert.Contains(t, text, "- Laptop (TechStore) - Expires in 3 days")
	assert.Contains(t, text, "- Blender (N/A) - Expires in 12 days")
}

func TestRenderExpiryEmailHTML(t *testing.T) {
	html := renderExpiryEmailHTML(sampleItems(), 30)

	assert.Contains(t, html, "Warranty Alert")
	assert.Contains(t, html, "<strong>Laptop</strong>")
	assert.Contains(t, html, "TechStore")
	assert.Contains(t, html, "<strong>3 days</strong>")
	assert.Contains(t, html, "Dec 4, 2024")
	assert.Contains(t, html, "next <strong>30 days</strong>")
	// Single gradient declaration survives the Sprintf %% escaping
	assert.Contains(t, html, "linear-gradient(135deg, #f59e0b 0%, #d97706 100%)")
}

func TestRenderExpiryEmailHTMLEscapesProductFields(t *testing.T) {
	items := []warrantydomain.ExpiringWarranty{{
		Warranty:           warrantydomain.Warranty{ProductName: `TV <55"> & more`, Retailer: "<script>"},
		DaysRemaining:      1,
		ResolvedExpiryDate: time.Date(2024, 12, 2, 0, 0, 0, 0, time.Local),
	}}

	html := renderExpiryEmailHTML(items, 7)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "TV &lt;55&quot;&gt; &amp; more")
}

func TestPluralWarrantySubjectForms(t *testing.T) {
	assert.Equal(t, "Warranty", pluralWarranty(1, true))
	assert.Equal(t, "Warranties", pluralWarranty(2, true))
	assert.Equal(t, "warranty", pluralWarranty(1, false))
	assert.True(t, strings.HasSuffix(pluralWarranty(5, false), "ies"))
}
