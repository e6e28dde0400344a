package mcpserver

// JournalFormatContract describes the file naming convention and the
// weekly content structure that LLM consumers should follow when
// reading or producing journal content.
const JournalFormatContract = `# Brackets Journal Format Contract

Every file in the journal vault follows a bracketed naming convention
and, for weekly files, a fixed Markdown structure.

## File naming

` + "```" + `
[YYYY][MM]WeekWW.md       weekly log        e.g. [2026][01]Week05.md
[YYYY][MM]MonthTopics.md  monthly topics    e.g. [2026][01]MonthTopics.md
[YYYY][00]YearTopics.md   year topics       e.g. [2026][00]YearTopics.md
[YYYY][MM].md             month consolidated
[YYYY].md                 year consolidated
` + "```" + `

All files live in one flat directory. Year is four digits, month and
week are zero-padded to two digits.

## Weekly file structure

` + "```" + `markdown
# 🗓️Week 5 75.5

## ✅Topics
  - [ ] An open task
    - [ ] A subtask (indent 4+)
  - [x] A completed task
  ---

## 📝Notes
  - Free-form notes
  ---

## 🏠26
  - Day entry for day-of-month 26 (🏠 = work location emoji)

## 🏖️27 (Holiday name)
  - Day headings may carry a parenthesised note
` + "```" + `

## Rules

1. The title line is ` + "`" + `# 🗓️Week <n>` + "`" + ` with an optional trailing
   body weight.
2. Checklist items use two-space indentation: ` + "`" + `  - [ ] text` + "`" + `
   (pending) and ` + "`" + `  - [x] text` + "`" + ` (completed). Deeper
   indentation marks subtasks of the item above.
3. Subsection headers inside a section use ` + "`" + `  - ### text` + "`" + `.
4. A line of ` + "`" + `  ---` + "`" + ` closes the Topics and Notes sections.
5. Day headings are ` + "`" + `## <emoji><day-of-month>` + "`" + ` with no space
   between emoji and number. Day numbers carry no month or year.
6. Encoding is UTF-8.
`
