// Package questionnaire defines the values the questionnaire pipeline passes
// around: the respondent printed in a document header, the ordered question
// set, and the render mode. Loaders live under internal/questionset but
// return the types defined here.
//
// Question sets are ordered. The position of a section and of each question
// inside it determines the numbering shown to respondents and the names of
// the fillable answer fields, so callers must never reorder them.
package questionnaire
