package generation

import (
	"fmt"

	"github.com/mamyzabawki/descgen-api/internal/domain"
)

// SystemInstruction is sent as the system message to chat-based providers.
const SystemInstruction = "Jesteś ekspertem od tworzenia profesjonalnych, technicznych opisów produktów. " +
	"Zawsze zwracasz czysty kod HTML zgodny z wymaganym układem, bez znaczników ```."

// promptTemplate is the fixed instructional layout the model must fill in.
// The HTML skeleton is part of the product contract with the storefront
// theme, so it lives here as a literal rather than an editable template file.
const promptTemplate = `
Stwórz kompletny opis HTML produktu w następującym układzie (bez ` + "```" + `):

<div class="new-desc-wrapper">

<div class="new-desc-data-wrapper">
<h3>[nazwa produktu i jego zastosowanie]</h3>
<p>[opis produktu w 4–6 zdaniach, długość ok. 1000–1500 znaków]</p>
</div>

<div class="new-desc-listing-wrapper">
<p>Najważniejsze cechy</p>
<ul class="new-desc-custom-list">
<li>[cecha 1]</li>
<li>[cecha 2]</li>
<li>[cecha 3]</li>
<li>[cecha 4]</li>
<li>[cecha 5]</li>
</ul>
</div>

<div class="attr-table-data">
<h4>Parametry</h4>
<div class="attr-table-wrapper">
<div class="attr-table-grey"><div>[nazwa parametru]</div><div>[wartość]</div></div>
<div class="attr-table-normal"><div>[nazwa parametru]</div><div>[wartość]</div></div>
[... kolejne parametry naprzemiennie grey/normal ...]
</div>
</div>

</div>

Zasady:
- Generuj czysty HTML, bez ` + "```" + ` ani znaczników języka.
- Sekcja <p> z opisem powinna mieć ok. 1000–1500 znaków.
- Lista cech: 4–6 naturalnych, konkretnych punktów.
- Jeśli atrybuty są puste, wyodrębnij parametry techniczne z opisu.
- Nie dodawaj stylów inline, komentarzy ani innych elementów.
- Język polski, profesjonalny, przyjazny, techniczny, bez przesady marketingowej.

Dane produktu:
Nazwa: %s
Opis: %s
Producent: %s
Atrybuty: %s
Zdjęcie: %s
`

// BuildPrompt assembles the full prompt for one product. Pure and
// deterministic given its input; callers normalize the input first.
func BuildPrompt(input domain.ProductInput) string {
	return fmt.Sprintf(promptTemplate,
		input.Name,
		input.Description,
		input.ProducerName,
		input.AttributeSummary(),
		input.ImageURL,
	)
}
