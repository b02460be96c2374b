package placeholder

import "fmt"

// Visitor handles every parameter kind. Implementations are checked by the
// compiler: a new kind means a new method here.
type Visitor interface {
	VisitOutput(p Param)
	VisitAnnotation(p Param)
	VisitModel(p Param)
	VisitModelOutput(p Param)
	VisitConfig(p Param)
	VisitCorpus(p Param)
	VisitLanguage(p Param)
	VisitDocument(p Param)
	VisitAllDocuments(p Param)
	VisitSource(p Param)
	VisitExport(p Param)
	VisitExportInput(p Param)
	VisitExportAnnotations(p Param)
	VisitBinary(p Param)
	VisitValue(p Param)
}

// Accept dispatches p to the visitor method matching its kind.
func (p Param) Accept(v Visitor) error {
	switch p.Kind {
	case KindOutput:
		v.VisitOutput(p)
	case KindAnnotation:
		v.VisitAnnotation(p)
	case KindModel:
		v.VisitModel(p)
	case KindModelOutput:
		v.VisitModelOutput(p)
	case KindConfig:
		v.VisitConfig(p)
	case KindCorpus:
		v.VisitCorpus(p)
	case KindLanguage:
		v.VisitLanguage(p)
	case KindDocument:
		v.VisitDocument(p)
	case KindAllDocuments:
		v.VisitAllDocuments(p)
	case KindSource:
		v.VisitSource(p)
	case KindExport:
		v.VisitExport(p)
	case KindExportInput:
		v.VisitExportInput(p)
	case KindExportAnnotations:
		v.VisitExportAnnotations(p)
	case KindBinary:
		v.VisitBinary(p)
	case KindValue:
		v.VisitValue(p)
	default:
		return fmt.Errorf("parameter '%s' has invalid kind %s", p.Name, p.Kind)
	}
	return nil
}
