package transform

import (
	"fmt"
	"slices"
)

// Input identifies something a transform output is computed from.
type Input int

const (
	InputFormat Input = iota
	InputDataWindow
	InputChannelNames
	InputChannelData
	InputOutputFormat
	InputScale
	InputRotate
	InputTranslate
	InputPivot
	InputFilter
)

var inputNames = map[Input]string{
	InputFormat:       "in.format",
	InputDataWindow:   "in.dataWindow",
	InputChannelNames: "in.channelNames",
	InputChannelData:  "in.channelData",
	InputOutputFormat: "outputFormat",
	InputScale:        "transform.scale",
	InputRotate:       "transform.rotate",
	InputTranslate:    "transform.translate",
	InputPivot:        "transform.pivot",
	InputFilter:       "filter",
}

func (i Input) String() string {
	if name, ok := inputNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Input(%d)", int(i))
}

// Output identifies a value produced by the transform.
type Output int

const (
	OutputFormat Output = iota
	OutputDataWindow
	OutputChannelNames
	OutputChannelData
	OutputScaledFormat
)

var outputNames = map[Output]string{
	OutputFormat:       "format",
	OutputDataWindow:   "dataWindow",
	OutputChannelNames: "channelNames",
	OutputChannelData:  "channelData",
	OutputScaledFormat: "scaledFormat",
}

func (o Output) String() string {
	if name, ok := outputNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Output(%d)", int(o))
}

// Both formats feed the adjusted matrix, so they invalidate everything the
// matrix does.
var affectsTable = map[Input][]Output{
	InputFormat:       {OutputDataWindow, OutputChannelData, OutputScaledFormat},
	InputDataWindow:   {OutputDataWindow},
	InputChannelNames: {OutputChannelNames},
	InputChannelData:  {OutputChannelData},
	InputOutputFormat: {OutputFormat, OutputDataWindow, OutputChannelData},
	InputScale:        {OutputDataWindow, OutputChannelData, OutputScaledFormat},
	InputRotate:       {OutputDataWindow, OutputChannelData},
	InputTranslate:    {OutputDataWindow, OutputChannelData},
	InputPivot:        {OutputDataWindow, OutputChannelData},
	InputFilter:       {OutputChannelData},
}

// Affects returns the outputs that must be invalidated when in changes.
func Affects(in Input) []Output {
	return slices.Clone(affectsTable[in])
}
