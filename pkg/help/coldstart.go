package help

const ColdstartYAML = `# smp Quick Start

strategies:
  auto: "heading when the page has an 'Additional details' section, keyword otherwise (default)"
  heading: "label/value groupings under the 'Additional details' heading"
  keyword: "text of the element right after 'developer', 'release date', 'version'"

fallbacks:
  title: "og:title -> <title> -> JSON-LD name, cut at ' on' or ' | '"
  description: "og:description -> meta description"
  url: "og:url -> requested URL"
  attributes: "JSON-LD fills developer, publisher (trailing ' Inc' removed), release date, version left empty"

commands:
  detect: |
    smp detect "https://www.meta.com/experiences/gorilla-tag/4979055762136823/"

  extract: |
    smp extract "https://www.meta.com/experiences/gorilla-tag/4979055762136823/"

  extract_saved_html: |
    smp extract --file page.html "https://www.meta.com/experiences/gorilla-tag/4979055762136823/"

  debug_fields: |
    smp extract --trace --strategy keyword "<url>"

  save_and_list: |
    smp extract --save --language --snapshot "<url>"
    smp records
    smp record 1
    smp forget 1

config:
  file: "smp.yaml (or --config), missing file = defaults"
  overrides: "--db, --format, --timeout, --user-agent"
`
