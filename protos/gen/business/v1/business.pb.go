// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: business/v1/business.proto

package businessv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	timestamppb "google.golang.org/protobuf/types/known/timestamppb"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type AvailabilityConfigRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	BusinessId    string                 `protobuf:"bytes,1,opt,name=business_id,json=businessId,proto3" json:"business_id,omitempty"`
	ServiceId     string                 `protobuf:"bytes,2,opt,name=service_id,json=serviceId,proto3" json:"service_id,omitempty"`
	StaffId       string                 `protobuf:"bytes,3,opt,name=staff_id,json=staffId,proto3" json:"staff_id,omitempty"` // optional; empty = business-wide pool
	Date          string                 `protobuf:"bytes,4,opt,name=date,proto3" json:"date,omitempty"`                      // YYYY-MM-DD, business-local
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *AvailabilityConfigRequest) Reset() {
	*x = AvailabilityConfigRequest{}
	mi := &file_business_v1_business_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *AvailabilityConfigRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*AvailabilityConfigRequest) ProtoMessage() {}

func (x *AvailabilityConfigRequest) ProtoReflect() protoreflect.Message {
	mi := &file_business_v1_business_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use AvailabilityConfigRequest.ProtoReflect.Descriptor instead.
func (*AvailabilityConfigRequest) Descriptor() ([]byte, []int) {
	return file_business_v1_business_proto_rawDescGZIP(), []int{0}
}

func (x *AvailabilityConfigRequest) GetBusinessId() string {
	if x != nil {
		return x.BusinessId
	}
	return ""
}

func (x *AvailabilityConfigRequest) GetServiceId() string {
	if x != nil {
		return x.ServiceId
	}
	return ""
}

func (x *AvailabilityConfigRequest) GetStaffId() string {
	if x != nil {
		return x.StaffId
	}
	return ""
}

func (x *AvailabilityConfigRequest) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

type DayRule struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Open          bool                   `protobuf:"varint,1,opt,name=open,proto3" json:"open,omitempty"`
	OpenMinute    int32                  `protobuf:"varint,2,opt,name=open_minute,json=openMinute,proto3" json:"open_minute,omitempty"`
	CloseMinute   int32                  `protobuf:"varint,3,opt,name=close_minute,json=closeMinute,proto3" json:"close_minute,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DayRule) Reset() {
	*x = DayRule{}
	mi := &file_business_v1_business_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DayRule) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DayRule) ProtoMessage() {}

func (x *DayRule) ProtoReflect() protoreflect.Message {
	mi := &file_business_v1_business_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DayRule.ProtoReflect.Descriptor instead.
func (*DayRule) Descriptor() ([]byte, []int) {
	return file_business_v1_business_proto_rawDescGZIP(), []int{1}
}

func (x *DayRule) GetOpen() bool {
	if x != nil {
		return x.Open
	}
	return false
}

func (x *DayRule) GetOpenMinute() int32 {
	if x != nil {
		return x.OpenMinute
	}
	return 0
}

func (x *DayRule) GetCloseMinute() int32 {
	if x != nil {
		return x.CloseMinute
	}
	return 0
}

type TimeOffInterval struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Start         *timestamppb.Timestamp `protobuf:"bytes,1,opt,name=start,proto3" json:"start,omitempty"`
	End           *timestamppb.Timestamp `protobuf:"bytes,2,opt,name=end,proto3" json:"end,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *TimeOffInterval) Reset() {
	*x = TimeOffInterval{}
	mi := &file_business_v1_business_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *TimeOffInterval) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*TimeOffInterval) ProtoMessage() {}

func (x *TimeOffInterval) ProtoReflect() protoreflect.Message {
	mi := &file_business_v1_business_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use TimeOffInterval.ProtoReflect.Descriptor instead.
func (*TimeOffInterval) Descriptor() ([]byte, []int) {
	return file_business_v1_business_proto_rawDescGZIP(), []int{2}
}

func (x *TimeOffInterval) GetStart() *timestamppb.Timestamp {
	if x != nil {
		return x.Start
	}
	return nil
}

func (x *TimeOffInterval) GetEnd() *timestamppb.Timestamp {
	if x != nil {
		return x.End
	}
	return nil
}

type AvailabilityConfigResponse struct {
	state                  protoimpl.MessageState `protogen:"open.v1"`
	Days                   []*DayRule             `protobuf:"bytes,1,rep,name=days,proto3" json:"days,omitempty"` // 7 entries, 0=Sunday..6=Saturday
	SlotGranularityMinutes int32                  `protobuf:"varint,2,opt,name=slot_granularity_minutes,json=slotGranularityMinutes,proto3" json:"slot_granularity_minutes,omitempty"`
	MinLeadMinutes         int32                  `protobuf:"varint,3,opt,name=min_lead_minutes,json=minLeadMinutes,proto3" json:"min_lead_minutes,omitempty"`
	MaxAdvanceDays         int32                  `protobuf:"varint,4,opt,name=max_advance_days,json=maxAdvanceDays,proto3" json:"max_advance_days,omitempty"`
	MinChangeMinutes       int32                  `protobuf:"varint,5,opt,name=min_change_minutes,json=minChangeMinutes,proto3" json:"min_change_minutes,omitempty"`
	PreventGaps            bool                   `protobuf:"varint,6,opt,name=prevent_gaps,json=preventGaps,proto3" json:"prevent_gaps,omitempty"`
	DurationMinutes        int32                  `protobuf:"varint,7,opt,name=duration_minutes,json=durationMinutes,proto3" json:"duration_minutes,omitempty"`
	ShortestServiceMinutes int32                  `protobuf:"varint,8,opt,name=shortest_service_minutes,json=shortestServiceMinutes,proto3" json:"shortest_service_minutes,omitempty"`
	Timezone               string                 `protobuf:"bytes,9,opt,name=timezone,proto3" json:"timezone,omitempty"`
	TimeOff                []*TimeOffInterval     `protobuf:"bytes,10,rep,name=time_off,json=timeOff,proto3" json:"time_off,omitempty"`
	unknownFields          protoimpl.UnknownFields
	sizeCache              protoimpl.SizeCache
}

func (x *AvailabilityConfigResponse) Reset() {
	*x = AvailabilityConfigResponse{}
	mi := &file_business_v1_business_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *AvailabilityConfigResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*AvailabilityConfigResponse) ProtoMessage() {}

func (x *AvailabilityConfigResponse) ProtoReflect() protoreflect.Message {
	mi := &file_business_v1_business_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use AvailabilityConfigResponse.ProtoReflect.Descriptor instead.
func (*AvailabilityConfigResponse) Descriptor() ([]byte, []int) {
	return file_business_v1_business_proto_rawDescGZIP(), []int{3}
}

func (x *AvailabilityConfigResponse) GetDays() []*DayRule {
	if x != nil {
		return x.Days
	}
	return nil
}

func (x *AvailabilityConfigResponse) GetSlotGranularityMinutes() int32 {
	if x != nil {
		return x.SlotGranularityMinutes
	}
	return 0
}

func (x *AvailabilityConfigResponse) GetMinLeadMinutes() int32 {
	if x != nil {
		return x.MinLeadMinutes
	}
	return 0
}

func (x *AvailabilityConfigResponse) GetMaxAdvanceDays() int32 {
	if x != nil {
		return x.MaxAdvanceDays
	}
	return 0
}

func (x *AvailabilityConfigResponse) GetMinChangeMinutes() int32 {
	if x != nil {
		return x.MinChangeMinutes
	}
	return 0
}

func (x *AvailabilityConfigResponse) GetPreventGaps() bool {
	if x != nil {
		return x.PreventGaps
	}
	return false
}

func (x *AvailabilityConfigResponse) GetDurationMinutes() int32 {
	if x != nil {
		return x.DurationMinutes
	}
	return 0
}

func (x *AvailabilityConfigResponse) GetShortestServiceMinutes() int32 {
	if x != nil {
		return x.ShortestServiceMinutes
	}
	return 0
}

func (x *AvailabilityConfigResponse) GetTimezone() string {
	if x != nil {
		return x.Timezone
	}
	return ""
}

func (x *AvailabilityConfigResponse) GetTimeOff() []*TimeOffInterval {
	if x != nil {
		return x.TimeOff
	}
	return nil
}

type BookingPolicyRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	BusinessId    string                 `protobuf:"bytes,1,opt,name=business_id,json=businessId,proto3" json:"business_id,omitempty"`
	CustomerRef   string                 `protobuf:"bytes,2,opt,name=customer_ref,json=customerRef,proto3" json:"customer_ref,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *BookingPolicyRequest) Reset() {
	*x = BookingPolicyRequest{}
	mi := &file_business_v1_business_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *BookingPolicyRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*BookingPolicyRequest) ProtoMessage() {}

func (x *BookingPolicyRequest) ProtoReflect() protoreflect.Message {
	mi := &file_business_v1_business_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use BookingPolicyRequest.ProtoReflect.Descriptor instead.
func (*BookingPolicyRequest) Descriptor() ([]byte, []int) {
	return file_business_v1_business_proto_rawDescGZIP(), []int{4}
}

func (x *BookingPolicyRequest) GetBusinessId() string {
	if x != nil {
		return x.BusinessId
	}
	return ""
}

func (x *BookingPolicyRequest) GetCustomerRef() string {
	if x != nil {
		return x.CustomerRef
	}
	return ""
}

type BookingPolicyResponse struct {
	state            protoimpl.MessageState `protogen:"open.v1"`
	ApprovalMode     string                 `protobuf:"bytes,1,opt,name=approval_mode,json=approvalMode,proto3" json:"approval_mode,omitempty"` // manual | automatic | vip
	Vip              bool                   `protobuf:"varint,2,opt,name=vip,proto3" json:"vip,omitempty"`
	MinChangeMinutes int32                  `protobuf:"varint,3,opt,name=min_change_minutes,json=minChangeMinutes,proto3" json:"min_change_minutes,omitempty"`
	unknownFields    protoimpl.UnknownFields
	sizeCache        protoimpl.SizeCache
}

func (x *BookingPolicyResponse) Reset() {
	*x = BookingPolicyResponse{}
	mi := &file_business_v1_business_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *BookingPolicyResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*BookingPolicyResponse) ProtoMessage() {}

func (x *BookingPolicyResponse) ProtoReflect() protoreflect.Message {
	mi := &file_business_v1_business_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use BookingPolicyResponse.ProtoReflect.Descriptor instead.
func (*BookingPolicyResponse) Descriptor() ([]byte, []int) {
	return file_business_v1_business_proto_rawDescGZIP(), []int{5}
}

func (x *BookingPolicyResponse) GetApprovalMode() string {
	if x != nil {
		return x.ApprovalMode
	}
	return ""
}

func (x *BookingPolicyResponse) GetVip() bool {
	if x != nil {
		return x.Vip
	}
	return false
}

func (x *BookingPolicyResponse) GetMinChangeMinutes() int32 {
	if x != nil {
		return x.MinChangeMinutes
	}
	return 0
}

var File_business_v1_business_proto protoreflect.FileDescriptor

const file_business_v1_business_proto_rawDesc = "" +
	"\n" +
	"\x1abusiness/v1/business.proto\x12\vbusiness.v1\x1a\x1fgoogle/protobuf/timestamp.proto\"\x8a\x01\n" +
	"\x19AvailabilityConfigRequest\x12\x1f\n" +
	"\vbusiness_id\x18\x01 \x01(\tR\n" +
	"businessId\x12\x1d\n" +
	"\n" +
	"service_id\x18\x02 \x01(\tR\tserviceId\x12\x19\n" +
	"\bstaff_id\x18\x03 \x01(\tR\astaffId\x12\x12\n" +
	"\x04date\x18\x04 \x01(\tR\x04date\"a\n" +
	"\aDayRule\x12\x12\n" +
	"\x04open\x18\x01 \x01(\bR\x04open\x12\x1f\n" +
	"\vopen_minute\x18\x02 \x01(\x05R\n" +
	"openMinute\x12!\n" +
	"\fclose_minute\x18\x03 \x01(\x05R\vcloseMinute\"q\n" +
	"\x0fTimeOffInterval\x120\n" +
	"\x05start\x18\x01 \x01(\v2\x1a.google.protobuf.TimestampR\x05start\x12,\n" +
	"\x03end\x18\x02 \x01(\v2\x1a.google.protobuf.TimestampR\x03end\"\xdf\x03\n" +
	"\x1aAvailabilityConfigResponse\x12(\n" +
	"\x04days\x18\x01 \x03(\v2\x14.business.v1.DayRuleR\x04days\x128\n" +
	"\x18slot_granularity_minutes\x18\x02 \x01(\x05R\x16slotGranularityMinutes\x12(\n" +
	"\x10min_lead_minutes\x18\x03 \x01(\x05R\x0eminLeadMinutes\x12(\n" +
	"\x10max_advance_days\x18\x04 \x01(\x05R\x0emaxAdvanceDays\x12,\n" +
	"\x12min_change_minutes\x18\x05 \x01(\x05R\x10minChangeMinutes\x12!\n" +
	"\fprevent_gaps\x18\x06 \x01(\bR\vpreventGaps\x12)\n" +
	"\x10duration_minutes\x18\a \x01(\x05R\x0fdurationMinutes\x128\n" +
	"\x18shortest_service_minutes\x18\b \x01(\x05R\x16shortestServiceMinutes\x12\x1a\n" +
	"\btimezone\x18\t \x01(\tR\btimezone\x127\n" +
	"\btime_off\x18\n" +
	" \x03(\v2\x1c.business.v1.TimeOffIntervalR\atimeOff\"Z\n" +
	"\x14BookingPolicyRequest\x12\x1f\n" +
	"\vbusiness_id\x18\x01 \x01(\tR\n" +
	"businessId\x12!\n" +
	"\fcustomer_ref\x18\x02 \x01(\tR\vcustomerRef\"|\n" +
	"\x15BookingPolicyResponse\x12#\n" +
	"\rapproval_mode\x18\x01 \x01(\tR\fapprovalMode\x12\x10\n" +
	"\x03vip\x18\x02 \x01(\bR\x03vip\x12,\n" +
	"\x12min_change_minutes\x18\x03 \x01(\x05R\x10minChangeMinutes2\xd6\x01\n" +
	"\x0fBusinessService\x12h\n" +
	"\x15GetAvailabilityConfig\x12&.business.v1.AvailabilityConfigRequest\x1a'.business.v1.AvailabilityConfigResponse\x12Y\n" +
	"\x10GetBookingPolicy\x12!.business.v1.BookingPolicyRequest\x1a\".business.v1.BookingPolicyResponseBAZ?github.com/sadia-akter/trimly/protos/gen/business/v1;businessv1b\x06proto3"

var (
	file_business_v1_business_proto_rawDescOnce sync.Once
	file_business_v1_business_proto_rawDescData []byte
)

func file_business_v1_business_proto_rawDescGZIP() []byte {
	file_business_v1_business_proto_rawDescOnce.Do(func() {
		file_business_v1_business_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_business_v1_business_proto_rawDesc), len(file_business_v1_business_proto_rawDesc)))
	})
	return file_business_v1_business_proto_rawDescData
}

var file_business_v1_business_proto_msgTypes = make([]protoimpl.MessageInfo, 6)
var file_business_v1_business_proto_goTypes = []any{
	(*AvailabilityConfigRequest)(nil),  // 0: business.v1.AvailabilityConfigRequest
	(*DayRule)(nil),                    // 1: business.v1.DayRule
	(*TimeOffInterval)(nil),            // 2: business.v1.TimeOffInterval
	(*AvailabilityConfigResponse)(nil), // 3: business.v1.AvailabilityConfigResponse
	(*BookingPolicyRequest)(nil),       // 4: business.v1.BookingPolicyRequest
	(*BookingPolicyResponse)(nil),      // 5: business.v1.BookingPolicyResponse
	(*timestamppb.Timestamp)(nil),      // 6: google.protobuf.Timestamp
}
var file_business_v1_business_proto_depIdxs = []int32{
	6, // 0: business.v1.TimeOffInterval.start:type_name -> google.protobuf.Timestamp
	6, // 1: business.v1.TimeOffInterval.end:type_name -> google.protobuf.Timestamp
	1, // 2: business.v1.AvailabilityConfigResponse.days:type_name -> business.v1.DayRule
	2, // 3: business.v1.AvailabilityConfigResponse.time_off:type_name -> business.v1.TimeOffInterval
	0, // 4: business.v1.BusinessService.GetAvailabilityConfig:input_type -> business.v1.AvailabilityConfigRequest
	4, // 5: business.v1.BusinessService.GetBookingPolicy:input_type -> business.v1.BookingPolicyRequest
	3, // 6: business.v1.BusinessService.GetAvailabilityConfig:output_type -> business.v1.AvailabilityConfigResponse
	5, // 7: business.v1.BusinessService.GetBookingPolicy:output_type -> business.v1.BookingPolicyResponse
	6, // [6:8] is the sub-list for method output_type
	4, // [4:6] is the sub-list for method input_type
	4, // [4:4] is the sub-list for extension type_name
	4, // [4:4] is the sub-list for extension extendee
	0, // [0:4] is the sub-list for field type_name
}

func init() { file_business_v1_business_proto_init() }
func file_business_v1_business_proto_init() {
	if File_business_v1_business_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_business_v1_business_proto_rawDesc), len(file_business_v1_business_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   6,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_business_v1_business_proto_goTypes,
		DependencyIndexes: file_business_v1_business_proto_depIdxs,
		MessageInfos:      file_business_v1_business_proto_msgTypes,
	}.Build()
	File_business_v1_business_proto = out.File
	file_business_v1_business_proto_goTypes = nil
	file_business_v1_business_proto_depIdxs = nil
}
