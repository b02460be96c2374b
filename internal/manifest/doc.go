// Package manifest loads annotator modules declared in HCL files, so that
// annotators implemented outside this binary can take part in compilation.
//
// A manifest file holds any number of module blocks:
//
//	module "sensaldo" {
//	  description = "Sentiment annotation with SenSALDO"
//
//	  config "sensaldo.model" {
//	    default     = "sensaldo/sensaldo.pickle"
//	    description = "Path to the SenSALDO model"
//	  }
//
//	  annotator "annotate" {
//	    language = ["swe"]
//
//	    param "sense" {
//	      kind  = "annotation"
//	      value = "<token>:saldo.sense"
//	    }
//	    param "out" {
//	      kind  = "output"
//	      value = "<token>:sensaldo.sentiment_label"
//	      class = "token:sentiment_label"
//	    }
//	  }
//	}
package manifest
