/*
Package template compiles stored prompt templates into rendered artifacts.

A prompt's content may be written in one of three dialects: plain {{name}}
substitution ("simple"), Mustache, or Jinja2. The package detects the dialect
from content, extracts the variable names a template references, and renders
flat-text or chat-message templates against a runtime variable bag, including
splice-point injection of conversation history into chat templates.

# Core entry points

  - DetectDialect / DetectTemplateDialect: classify content into a dialect.
  - ExtractVariables: ordered unique variable names referenced by a template.
  - CompileTemplate / CompileTextTemplate / CompileChatTemplate: render.
  - ValidateVariables: advisory missing-variable check; never blocks compilation.

All functions are pure and safe for concurrent use. Variable extraction is a
lightweight regex scan over the common forms prompt authors write, not a full
grammar parse; for dot paths only the root segment is reported.
*/
package template
