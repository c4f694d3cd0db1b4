package ai

// ExtractPrompt is the prompt template for entity and relationship extraction
// from disclosure documents. It expects four arguments: the recognized entity
// type tags, the recognized relationship type tags, the document name, and
// the text unit to analyze.
const ExtractPrompt = `
# Task Context
You are tasked with extracting **structured entity and relationship information** from a public-sector disclosure document (asset declarations, procurement records, contract awards, company registries, press reports). The goal is to reconstruct the network of people and companies the text describes.

# Background Data
- **Entity_types:** [%s]
- **Relationship_types:** [%s]
- **Document_name:** [%s]

The document name may hint at the main subject (e.g., *"declaration_perez_2023"* → likely about an official named Perez). Use it only if the text itself does not clearly identify a subject.

# Detailed Task Description & Rules

## Entity Extraction
1. Identify every person and organization in the text that fits one of the entity types above.
2. For each entity, extract:
   - **id:** A stable lowercase identifier derived from the name (e.g., "juan_perez", "constructora_andina_sa"). Use the same id for every mention of the same real-world entity.
   - **name:** The full name as written in the text.
   - **type:** Exactly one of the provided entity types. Do not invent new types.
   - **description:** Everything the text explicitly states about the entity: positions held, ownership stakes, contract amounts, dates, jurisdictions. Do not omit explicit detail and do not speculate.
3. A person who holds or recently held public office is an "official". A person who holds no office but has close ties to officials is a "politically_exposed_person". A company that sells to the state is a "contractor_company". A person or organization that receives money, assets, or favors is a "beneficiary".

## Relationship Extraction
1. Identify every relationship the text explicitly states between two extracted entities.
2. For each relationship, extract:
   - **source** and **target:** The ids of the two entities. Both must appear in your entity list.
   - **type:** Exactly one of the provided relationship types. Family ties are "familial", contracts and business dealings are "commercial", party or government ties are "political", payments and gifts are "benefit".
   - **description:** What the text says about the tie, including amounts and dates where given.
3. Extract a relationship for **each distinct fact**: two entities connected by both a contract and a family tie yield two relationships.
4. Never emit a relationship whose source or target is not in your entity list.

# Examples
Text: "Mayor Juan Perez awarded a 2.4M road contract to Constructora Andina S.A., a firm owned by his brother Pedro Perez."
Entities: juan_perez (official), constructora_andina_sa (contractor_company), pedro_perez (politically_exposed_person)
Relationships: juan_perez -commercial-> constructora_andina_sa; juan_perez -familial-> pedro_perez; pedro_perez -commercial-> constructora_andina_sa

# Immediate Task Description or Request
Extract all entities and relationships from the following text unit.

# Text Unit
%s

# Output Formatting
Return only the structured output requested by the response schema. No commentary.
`

// SummaryPrompt is the prompt template for a plain-language briefing over
// scan results. It expects three arguments: the case name, the network
// statistics, and the finding list.
const SummaryPrompt = `
# Task Context
You are an analyst summarizing the current state of a corruption-network investigation for an investigative journalist.

# Background Data
- **Case:** [%s]
- **Network_statistics:** [%s]
- **Findings:** [%s]

# Detailed Task Description & Rules
- Write a short briefing (3-6 sentences) of the suspicious patterns found so far.
- Name the involved entities exactly as they appear in the findings.
- If there are no findings, say so plainly; do not speculate beyond the data.
- Do not invent entities, relationships, or risk levels that are not listed.

# Output Formatting
Plain prose. No headings, no bullet points, no markdown.
`
